package port

import "image"

// Observer получает промежуточные изображения этапов для отладки.
// Решения конвейера от наблюдателя не зависят.
type Observer interface {
	// Stage вызывается после каждого этапа с его результатом
	Stage(name string, img image.Image)

	// Event сообщает о событии конвейера
	Event(msg string, keysAndValues ...any)
}
