package entity

import "image"

// Geometry содержит объединённую область глаз и вычисленную область носа и рта.
type Geometry struct {
	Found     bool            // хотя бы один детектор глаз вернул прямоугольник
	Eyes      image.Rectangle // объединённая рамка глаз в координатах лица
	NoseMouth image.Rectangle // область носа и рта под глазами
}

// NotFound возвращает геометрию для лица, на котором глаза не найдены.
func NotFound() Geometry {
	return Geometry{}
}

