package port

import "image"

// FeatureDetector интерфейс каскадного детектора объектов
type FeatureDetector interface {
	// Detect ищет объекты на полутоновом изображении и возвращает их рамки
	Detect(gray *image.Gray) []image.Rectangle

	// Name возвращает имя загруженного классификатора
	Name() string
}
