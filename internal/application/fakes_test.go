package app

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"mask-detector/internal/domain/port"
)

type fakeDetector struct {
	name  string
	rects []image.Rectangle
	calls atomic.Int32
}

func newFakeDetector(name string, rects ...image.Rectangle) *fakeDetector {
	return &fakeDetector{name: name, rects: rects}
}

func (f *fakeDetector) Detect(*image.Gray) []image.Rectangle {
	f.calls.Add(1)
	return f.rects
}

func (f *fakeDetector) Name() string { return f.name }

type recordingObserver struct {
	mu     sync.Mutex
	stages []string
	events []string
}

func (o *recordingObserver) Stage(name string, _ image.Image) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, name)
}

func (o *recordingObserver) Event(msg string, _ ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, msg)
}

var (
	skinColor   = color.NRGBA{R: 220, G: 160, B: 130, A: 255}
	fabricColor = color.NRGBA{R: 40, G: 60, B: 200, A: 255}
)

// twoTone создаёт изображение: строки выше split цвета top, остальные bottom.
func twoTone(w, h, split int, top, bottom color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := bottom
		if y < split {
			c = top
		}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type testDetectors struct {
	face, fallback, left, right, glasses *fakeDetector
}

func (d testDetectors) set() *Detectors {
	return &Detectors{
		Face:         d.face,
		FaceFallback: d.fallback,
		LeftEye:      d.left,
		RightEye:     d.right,
		EyeGlasses:   d.glasses,
	}
}

// oneFace детекторы, которые находят одно лицо и, если eyes не пуст, глаза на нём.
func oneFace(eyes ...image.Rectangle) testDetectors {
	return testDetectors{
		face:     newFakeDetector("haar", image.Rect(10, 10, 90, 90)),
		fallback: newFakeDetector("lbp"),
		left:     newFakeDetector("left", eyes...),
		right:    newFakeDetector("right"),
		glasses:  newFakeDetector("glasses"),
	}
}

// fakeProcessor считает кожей ровно skinColor, остальные операции
// выполняет напрямую над пикселями.
type fakeProcessor struct {
	mu    sync.Mutex
	boxes [][]port.Box
	err   error // возвращается из SkinMask
}

func (p *fakeProcessor) Preprocess(img image.Image) (*port.Preprocessed, error) {
	gray, _ := p.Grayscale(img)
	return &port.Preprocessed{Gray: gray, Equalized: gray, Blurred: gray}, nil
}

func (p *fakeProcessor) Grayscale(img image.Image) (*image.Gray, error) {
	src := imaging.Clone(img)
	gray := image.NewGray(src.Rect)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}
	return gray, nil
}

func (p *fakeProcessor) SkinMask(face image.Image) (*port.SkinSegmentation, error) {
	if p.err != nil {
		return nil, p.err
	}
	src := imaging.Clone(face)
	mask := image.NewGray(src.Rect)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			if src.NRGBAAt(x, y) == skinColor {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return &port.SkinSegmentation{Cr: mask, Mask: mask, Threshold: 128}, nil
}

func (p *fakeProcessor) CountNonZero(mask *image.Gray, r image.Rectangle) (int, error) {
	r = r.Intersect(mask.Rect)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask.GrayAt(x, y).Y != 0 {
				n++
			}
		}
	}
	return n, nil
}

func (p *fakeProcessor) DrawBoxes(img image.Image, boxes []port.Box) (*image.NRGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.boxes = append(p.boxes, boxes)
	return imaging.Clone(img), nil
}

var errSegmentation = errors.New("segmentation failed")
