package app

import (
	"context"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

// UserService ведёт диалог пользователя бота: ожидание фото, обработка,
// возврат в меню с итогом проверки.
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState переводит пользователя в состояние state.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	return s.update(ctx, userID, chatID, func(u *entity.User) { u.SetState(state) })
}

// BeginCheck ждёт от пользователя фото.
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Finish сохраняет итог проверки и возвращает пользователя в главное меню.
func (s *UserService) Finish(ctx context.Context, userID, chatID int64, result *entity.ImageResult) (*entity.User, error) {
	return s.update(ctx, userID, chatID, func(u *entity.User) { u.RecordCheck(result) })
}

// Stats возвращает число пользователей и выполненных проверок.
func (s *UserService) Stats(ctx context.Context) (users, checks int, err error) {
	return s.repo.Stats(ctx)
}

func (s *UserService) update(ctx context.Context, userID, chatID int64, fn func(*entity.User)) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	fn(user)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
