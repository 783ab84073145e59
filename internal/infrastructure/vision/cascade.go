//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"mask-detector/internal/domain/port"
)

// GoCVCascade каскад Хаара или LBP из OpenCV.
type GoCVCascade struct {
	name string

	// CascadeClassifier нельзя вызывать из нескольких горутин одновременно.
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

// LoadCascade загружает XML-файл каскада.
func LoadCascade(name, path string) (*GoCVCascade, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%s (%s): %w", name, path, ErrCascadeLoad)
	}
	return &GoCVCascade{name: name, classifier: classifier}, nil
}

// Detect ищет признак на полутоновом изображении.
func (c *GoCVCascade) Detect(gray *image.Gray) []image.Rectangle {
	if gray == nil || gray.Rect.Empty() {
		return nil
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil
	}
	defer mat.Close()

	c.mu.Lock()
	rects := c.classifier.DetectMultiScale(mat)
	c.mu.Unlock()

	// координаты Mat отсчитываются от нуля
	for i := range rects {
		rects[i] = rects[i].Add(gray.Rect.Min)
	}
	return rects
}

// Name возвращает имя каскада.
func (c *GoCVCascade) Name() string { return c.name }

// Close освобождает классификатор.
func (c *GoCVCascade) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.classifier.Close()
}

var _ port.FeatureDetector = (*GoCVCascade)(nil)
