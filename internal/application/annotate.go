package app

import (
	"image"
	"image/color"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

var (
	faceColor      = color.RGBA{R: 255, B: 255, A: 255}
	eyeColor       = color.RGBA{R: 255, B: 255, A: 255}
	noseMouthColor = color.RGBA{A: 255}
)

// Annotate рисует на копии изображения рамки лиц, глаз и области носа и рта.
func (s *DetectionService) Annotate(img image.Image, faces []*entity.FaceRecord) (*image.NRGBA, error) {
	return s.proc.DrawBoxes(img, annotationBoxes(faces))
}

// annotationBoxes рамки всех лиц в координатах исходного изображения.
func annotationBoxes(faces []*entity.FaceRecord) []port.Box {
	boxes := make([]port.Box, 0, 3*len(faces))
	for _, f := range faces {
		boxes = append(boxes, port.Box{Rect: f.Bounds, Color: faceColor})
		if f.Geometry.Found {
			boxes = append(boxes, regionBoxes(f.Geometry, f.Bounds.Min)...)
		}
	}
	return boxes
}

// regionBoxes области глаз и носа/рта, сдвинутые на offset.
func regionBoxes(g entity.Geometry, offset image.Point) []port.Box {
	return []port.Box{
		{Rect: g.Eyes.Add(offset), Color: eyeColor},
		{Rect: g.NoseMouth.Add(offset), Color: noseMouthColor},
	}
}
