//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"mask-detector/internal/domain/port"
)

// GoCVProcessor заглушка обработки изображений для сборки без OpenCV.
type GoCVProcessor struct{}

// NewProcessor создаёт заглушку.
func NewProcessor() *GoCVProcessor { return &GoCVProcessor{} }

// Preprocess возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) Preprocess(img image.Image) (*port.Preprocessed, error) {
	_ = img
	return nil, ErrBuildTag
}

// Grayscale возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) Grayscale(img image.Image) (*image.Gray, error) {
	_ = img
	return nil, ErrBuildTag
}

// SkinMask возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) SkinMask(face image.Image) (*port.SkinSegmentation, error) {
	_ = face
	return nil, ErrBuildTag
}

// CountNonZero возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) CountNonZero(mask *image.Gray, r image.Rectangle) (int, error) {
	_ = mask
	_ = r
	return 0, ErrBuildTag
}

// DrawBoxes возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) DrawBoxes(img image.Image, boxes []port.Box) (*image.NRGBA, error) {
	_ = img
	_ = boxes
	return nil, ErrBuildTag
}

var _ port.ImageProcessor = (*GoCVProcessor)(nil)
