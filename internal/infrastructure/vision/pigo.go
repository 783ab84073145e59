package vision

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"mask-detector/internal/domain/port"
)

// PigoParams параметры поиска лиц pigo.
type PigoParams struct {
	MinSize      int     // минимальная сторона лица в пикселях
	MaxSize      int     // 0 означает большую сторону изображения
	ShiftFactor  float64 // шаг окна относительно его размера
	ScaleFactor  float64 // шаг масштаба
	IoUThreshold float64 // порог объединения пересекающихся детекций
	MinQuality   float32 // детекции с меньшей оценкой отбрасываются
}

// DefaultPigoParams возвращает параметры, с которыми pigo обычно запускают.
func DefaultPigoParams() PigoParams {
	return PigoParams{
		MinSize:      20,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   5.0,
	}
}

// пропуск, глубина деревьев и их число
const pigoHeaderSize = 16

// PigoFaceDetector детектор лиц на чистом Go.
type PigoFaceDetector struct {
	classifier *pigo.Pigo
	params     PigoParams
}

// LoadPigo читает и распаковывает бинарный каскад pigo.
func LoadPigo(path string, params PigoParams) (*PigoFaceDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pigo (%s): %w: %v", path, ErrCascadeLoad, err)
	}
	return NewPigoFaceDetector(data, params)
}

// NewPigoFaceDetector распаковывает каскад из байтов.
func NewPigoFaceDetector(cascade []byte, params PigoParams) (det *PigoFaceDetector, err error) {
	// Unpack не проверяет длину и паникует на обрезанном файле
	if len(cascade) < pigoHeaderSize {
		return nil, fmt.Errorf("pigo: %w: cascade is too short (%d bytes)", ErrCascadeLoad, len(cascade))
	}
	defer func() {
		if r := recover(); r != nil {
			det, err = nil, fmt.Errorf("pigo: %w: corrupted cascade: %v", ErrCascadeLoad, r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("pigo: %w: %v", ErrCascadeLoad, err)
	}
	return &PigoFaceDetector{classifier: classifier, params: params}, nil
}

// Detect ищет лица. Классификатор только читается, вызов безопасен
// из нескольких горутин.
func (d *PigoFaceDetector) Detect(gray *image.Gray) []image.Rectangle {
	if gray == nil || gray.Rect.Empty() {
		return nil
	}

	rows, cols := gray.Rect.Dy(), gray.Rect.Dx()
	maxSize := d.params.MaxSize
	if maxSize <= 0 {
		maxSize = max(rows, cols)
	}

	cp := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray.Pix,
			Rows:   rows,
			Cols:   cols,
			Dim:    gray.Stride,
		},
	}

	dets := d.classifier.RunCascade(cp, 0)
	dets = d.classifier.ClusterDetections(dets, d.params.IoUThreshold)
	return detectionRects(dets, d.params.MinQuality, gray.Rect)
}

// Name возвращает имя детектора.
func (d *PigoFaceDetector) Name() string { return "pigo" }

// detectionRects переводит центры и масштабы pigo в прямоугольники
// внутри bounds.
func detectionRects(dets []pigo.Detection, minQuality float32, bounds image.Rectangle) []image.Rectangle {
	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q <= minQuality {
			continue
		}
		half := det.Scale / 2
		r := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half).
			Add(bounds.Min).
			Intersect(bounds)
		if r.Empty() {
			continue
		}
		rects = append(rects, r)
	}
	return rects
}

var _ port.FeatureDetector = (*PigoFaceDetector)(nil)
