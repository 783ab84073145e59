package app

import (
	"image"
	"math"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

// DefaultNoseMouthFactor во сколько раз область носа и рта выше области глаз
const DefaultNoseMouthFactor = 3

// GeometryResolver находит область глаз тремя каскадами и по ней строит
// область носа и рта.
type GeometryResolver struct {
	left    port.FeatureDetector
	right   port.FeatureDetector
	glasses port.FeatureDetector
	factor  int
}

// NewGeometryResolver создаёт резолвер; factor < 1 заменяется значением по умолчанию.
func NewGeometryResolver(left, right, glasses port.FeatureDetector, factor int) *GeometryResolver {
	if factor < 1 {
		factor = DefaultNoseMouthFactor
	}
	return &GeometryResolver{left: left, right: right, glasses: glasses, factor: factor}
}

// Resolve запускает все три каскада глаз на яркости фрагмента лица и
// объединяет их рамки.
func (g *GeometryResolver) Resolve(gray *image.Gray) entity.Geometry {
	eyes, found := FuseBoxes(
		g.left.Detect(gray),
		g.right.Detect(gray),
		g.glasses.Detect(gray),
	)
	if !found {
		return entity.NotFound()
	}

	return entity.Geometry{
		Found:     true,
		Eyes:      eyes,
		NoseMouth: NoseMouthBox(eyes, gray.Bounds().Dy(), g.factor),
	}
}

// FuseBoxes объединяет рамки всех групп в одну охватывающую.
// Второе значение false, если не было ни одной рамки.
func FuseBoxes(groups ...[]image.Rectangle) (image.Rectangle, bool) {
	acc := newBoxAccumulator()
	for _, rects := range groups {
		for _, r := range rects {
			acc.add(r)
		}
	}
	return acc.box()
}

// NoseMouthBox строит область носа и рта: та же ширина, что у глаз, сверху
// нижний край глаз, высота factor высот глаз, но не ниже края лица.
func NoseMouthBox(eyes image.Rectangle, faceHeight, factor int) image.Rectangle {
	top := eyes.Max.Y
	bottom := min(top+factor*eyes.Dy(), faceHeight)
	if bottom < top {
		bottom = top
	}
	return image.Rectangle{
		Min: image.Pt(eyes.Min.X, top),
		Max: image.Pt(eyes.Max.X, bottom),
	}
}

type boxAccumulator struct {
	minX, minY int
	maxX, maxY int
	seen       int
}

func newBoxAccumulator() boxAccumulator {
	return boxAccumulator{minX: math.MaxInt, minY: math.MaxInt}
}

func (a *boxAccumulator) add(r image.Rectangle) {
	r = r.Canon()
	a.minX = min(a.minX, r.Min.X)
	a.minY = min(a.minY, r.Min.Y)
	a.maxX = max(a.maxX, r.Max.X)
	a.maxY = max(a.maxY, r.Max.Y)
	a.seen++
}

func (a boxAccumulator) box() (image.Rectangle, bool) {
	if a.seen == 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(a.minX, a.minY, a.maxX, a.maxY), true
}
