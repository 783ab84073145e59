package entity

import "image"

// Classification итоговое решение по одному лицу
type Classification string

const (
	Masked   Classification = "masked"   // маска обнаружена
	Unmasked Classification = "unmasked" // маска не обнаружена
	Skipped  Classification = "skipped"  // глаза не найдены, сравнение не выполнялось
)

// FaceRecord описывает одно найденное лицо на изображении.
// Создаётся при обнаружении лица и заполняется по мере прохождения этапов.
type FaceRecord struct {
	Index    int             // порядковый номер лица на изображении
	Bounds   image.Rectangle // рамка лица в координатах исходного изображения (с отступом)
	Crop     *image.NRGBA    // цветной фрагмент исходного изображения
	SkinMask *image.Gray     // бинарная маска кожи (0/255)
	Geometry Geometry        // области глаз и носа/рта

	Classification  Classification
	EyePixels       int // ненулевые пиксели маски в области глаз
	NoseMouthPixels int // ненулевые пиксели маски в области носа и рта
}
