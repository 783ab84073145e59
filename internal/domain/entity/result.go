package entity

// ImageResult хранит итог обработки одного изображения.
type ImageResult struct {
	RunID string // идентификатор прогона оценки, пуст для одиночной проверки
	Path  string // путь к файлу изображения
	Label string // метка из набора данных (with_mask, without_mask)

	Expected     int // ожидаемое число лиц по разметке
	Detected     int // число найденных лиц
	SkippedFace  int // лица, пропущенные из-за ошибки детекции лица
	SkippedEye   int // лица, пропущенные из-за того, что глаза не найдены
	Masked       int // лица в маске
	Unmasked     int // лица без маски
	OverDetected int // найдено больше лиц, чем ожидалось

	UsedFallback bool   // лица найдены запасным каскадом
	Err          string // причина, по которой изображение не обработано
}

// NewImageResult создаёт пустой результат для изображения.
func NewImageResult(path, label string, expected int) *ImageResult {
	return &ImageResult{Path: path, Label: label, Expected: expected}
}

// SetDetected фиксирует число найденных лиц и пересчитывает пропуски.
// Разница с разметкой не уходит в минус: лишние лица попадают в OverDetected.
func (r *ImageResult) SetDetected(n int) {
	r.Detected = n
	r.SkippedFace = 0
	r.OverDetected = 0
	if diff := r.Expected - n; diff > 0 {
		r.SkippedFace = diff
	} else {
		r.OverDetected = -diff
	}
}

// Tally учитывает решение по одному лицу.
func (r *ImageResult) Tally(c Classification) {
	switch c {
	case Masked:
		r.Masked++
	case Unmasked:
		r.Unmasked++
	case Skipped:
		r.SkippedEye++
	}
}

// Classified возвращает число лиц, по которым принято решение.
func (r *ImageResult) Classified() int {
	return r.Masked + r.Unmasked
}

// Total возвращает сумму всех счётчиков.
func (r *ImageResult) Total() int {
	return r.SkippedFace + r.SkippedEye + r.Masked + r.Unmasked
}

// Failed сообщает, что изображение не удалось прочитать.
func (r *ImageResult) Failed() bool {
	return r.Err != ""
}
