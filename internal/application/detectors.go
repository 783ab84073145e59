package app

import (
	"errors"
	"fmt"

	"mask-detector/internal/domain/port"
)

var (
	// ErrNoDetector возвращается, если в наборе не хватает каскада.
	ErrNoDetector = errors.New("detector is not configured")

	// ErrNoProcessor возвращается, если не задана обработка изображений.
	ErrNoProcessor = errors.New("image processor is not configured")

	// ErrEmptyImage возвращается для изображения нулевого размера.
	ErrEmptyImage = errors.New("empty image")
)

// Detectors набор каскадов конвейера. Загружается один раз при старте и
// дальше используется только для чтения.
type Detectors struct {
	Face         port.FeatureDetector // основной каскад лиц
	FaceFallback port.FeatureDetector // запасной каскад лиц
	LeftEye      port.FeatureDetector
	RightEye     port.FeatureDetector
	EyeGlasses   port.FeatureDetector // глаза в очках и без
}

// Validate проверяет, что заданы все пять каскадов.
func (d *Detectors) Validate() error {
	if d == nil {
		return ErrNoDetector
	}
	for name, det := range map[string]port.FeatureDetector{
		"face":          d.Face,
		"face fallback": d.FaceFallback,
		"left eye":      d.LeftEye,
		"right eye":     d.RightEye,
		"eyeglasses":    d.EyeGlasses,
	} {
		if det == nil {
			return fmt.Errorf("%s: %w", name, ErrNoDetector)
		}
	}
	return nil
}
