package port

import (
	"context"

	"mask-detector/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей бота
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// Stats возвращает число пользователей и выполненных ими проверок
	Stats(ctx context.Context) (users, checks int, err error)
}
