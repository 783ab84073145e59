package app

import (
	"mask-detector/internal/domain/entity"
)

// DefaultMaskRatio во сколько раз пикселей кожи у глаз должно быть больше,
// чем у носа и рта, чтобы считать лицо в маске
const DefaultMaskRatio = 1.2

// Decision решение по одному лицу вместе с посчитанными пикселями
type Decision struct {
	Classification  entity.Classification
	EyePixels       int
	NoseMouthPixels int
}

// MaskDecider сравнивает плотность кожи в области глаз и в области носа и рта.
type MaskDecider struct {
	Ratio float64
}

// NewMaskDecider создаёт правило; ratio <= 0 заменяется значением по умолчанию.
func NewMaskDecider(ratio float64) MaskDecider {
	if ratio <= 0 {
		ratio = DefaultMaskRatio
	}
	return MaskDecider{Ratio: ratio}
}

// Decide возвращает Skipped, если глаза не найдены, иначе Masked при
// eye > Ratio*noseMouth и Unmasked в остальных случаях.
func (d MaskDecider) Decide(g entity.Geometry, eye, noseMouth int) Decision {
	if !g.Found {
		return Decision{Classification: entity.Skipped}
	}

	c := entity.Unmasked
	if float64(eye) > d.Ratio*float64(noseMouth) {
		c = entity.Masked
	}
	return Decision{Classification: c, EyePixels: eye, NoseMouthPixels: noseMouth}
}
