// Package vision загружает каскадные классификаторы и оборачивает их в
// port.FeatureDetector, а операции над пикселями реализует в
// port.ImageProcessor. Всё, что использует OpenCV, доступно только со
// сборкой под тегом gocv. Детектор лиц pigo работает без OpenCV.
package vision

import "errors"

var (
	// ErrBuildTag возвращается, если бинарник собран без тега gocv.
	ErrBuildTag = errors.New("gocv build tag is not enabled")

	// ErrCascadeLoad возвращается, если файл каскада не удалось загрузить.
	ErrCascadeLoad = errors.New("failed to load cascade")

	// ErrUnknownProvider возвращается для неизвестного поставщика детектора лиц.
	ErrUnknownProvider = errors.New("unknown face provider")
)
