//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"mask-detector/internal/domain/port"
)

// GoCVCascade заглушка каскада для сборки без OpenCV.
type GoCVCascade struct {
	name string
}

// LoadCascade возвращает ошибку, если сборка без тега gocv.
func LoadCascade(name, path string) (*GoCVCascade, error) {
	_ = name
	_ = path
	return nil, ErrBuildTag
}

// Detect ничего не находит.
func (c *GoCVCascade) Detect(gray *image.Gray) []image.Rectangle {
	_ = gray
	return nil
}

// Name возвращает имя каскада.
func (c *GoCVCascade) Name() string { return c.name }

// Close ничего не делает.
func (c *GoCVCascade) Close() error { return nil }

var _ port.FeatureDetector = (*GoCVCascade)(nil)
