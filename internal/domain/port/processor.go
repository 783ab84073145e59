package port

import (
	"image"
	"image/color"
)

// Preprocessed этапы подготовки изображения к поиску лиц
type Preprocessed struct {
	Gray      *image.Gray // яркость
	Equalized *image.Gray // после выравнивания гистограммы
	Blurred   *image.Gray // после размытия Гаусса 5x5, вход детектора лиц
}

// SkinSegmentation маска кожи фрагмента лица
type SkinSegmentation struct {
	Cr        *image.Gray // канал Cr пространства YCrCb
	Mask      *image.Gray // 255 для кожи, 0 для остального
	Threshold uint8       // порог Оцу
}

// Box рамка для отрисовки
type Box struct {
	Rect  image.Rectangle
	Color color.RGBA
}

// ImageProcessor операции над пикселями, на которых строится конвейер.
// Реализация не изменяет входные изображения.
type ImageProcessor interface {
	// Preprocess переводит цветное изображение в серое, выравнивает
	// гистограмму и размывает ядром 5x5.
	Preprocess(img image.Image) (*Preprocessed, error)

	// Grayscale возвращает яркость изображения.
	Grayscale(img image.Image) (*image.Gray, error)

	// SkinMask бинаризует канал Cr порогом Оцу.
	SkinMask(face image.Image) (*SkinSegmentation, error)

	// CountNonZero считает ненулевые пиксели маски внутри r.
	CountNonZero(mask *image.Gray, r image.Rectangle) (int, error)

	// DrawBoxes рисует рамки толщиной 1 пиксель на копии изображения.
	DrawBoxes(img image.Image, boxes []Box) (*image.NRGBA, error)
}
