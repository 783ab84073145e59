package entity

// Метки набора данных
const (
	LabelWithMask    = "with_mask"
	LabelWithoutMask = "without_mask"
)

// Sample одно изображение набора данных с разметкой
type Sample struct {
	Path     string // путь к файлу
	Label    string // имя каталога с изображением
	Expected int    // ожидаемое число лиц
}
