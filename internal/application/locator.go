package app

import (
	"image"

	"github.com/disintegration/imaging"

	"mask-detector/internal/domain/port"
)

// faceMargin отступ вокруг рамки лица перед вырезанием
const faceMargin = 1

// LocatedFace лицо, вырезанное из исходного цветного изображения
type LocatedFace struct {
	Bounds image.Rectangle // рамка с отступом в координатах исходного изображения
	Crop   *image.NRGBA
}

// Located итог поиска лиц на одном изображении
type Located struct {
	Faces        []LocatedFace
	Detector     string // имя каскада, нашедшего лица
	UsedFallback bool
}

// FaceLocator ищет лица основным каскадом и один раз повторяет поиск
// запасным, если основной ничего не нашёл.
type FaceLocator struct {
	primary  port.FeatureDetector
	fallback port.FeatureDetector
}

// NewFaceLocator создаёт поиск лиц с основным и запасным каскадом.
func NewFaceLocator(primary, fallback port.FeatureDetector) *FaceLocator {
	return &FaceLocator{primary: primary, fallback: fallback}
}

// Locate ищет лица на подготовленном изображении pre и вырезает их из original.
// Пустой результат после запасного каскада означает, что лиц нет.
func (l *FaceLocator) Locate(original *image.NRGBA, pre *image.Gray) Located {
	rects := l.primary.Detect(pre)
	out := Located{Detector: l.primary.Name()}

	if len(rects) == 0 && l.fallback != nil {
		rects = l.fallback.Detect(pre)
		out.Detector = l.fallback.Name()
		out.UsedFallback = true
	}

	bounds := original.Bounds()
	for _, r := range rects {
		expanded := r.Canon().Inset(-faceMargin).Intersect(bounds)
		if expanded.Empty() {
			continue
		}
		out.Faces = append(out.Faces, LocatedFace{
			Bounds: expanded,
			Crop:   imaging.Crop(original, expanded),
		})
	}
	return out
}
