package port

import (
	"context"

	"mask-detector/internal/domain/entity"
)

// ResultWriter интерфейс получателя результатов по изображениям
type ResultWriter interface {
	// Write сохраняет результат одного изображения
	Write(ctx context.Context, result *entity.ImageResult) error

	// Close завершает запись
	Close() error
}
