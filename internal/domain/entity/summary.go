package entity

import (
	"sort"
	"time"
)

// Counts суммарные счётчики по набору изображений
type Counts struct {
	Images       int
	Failed       int
	Expected     int
	Detected     int
	SkippedFace  int
	SkippedEye   int
	Masked       int
	Unmasked     int
	OverDetected int
}

// Add прибавляет результат одного изображения.
func (c *Counts) Add(r *ImageResult) {
	c.Images++
	if r.Failed() {
		c.Failed++
		return
	}
	c.Expected += r.Expected
	c.Detected += r.Detected
	c.SkippedFace += r.SkippedFace
	c.SkippedEye += r.SkippedEye
	c.Masked += r.Masked
	c.Unmasked += r.Unmasked
	c.OverDetected += r.OverDetected
}

// Summary итог прогона по набору данных
type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time

	Total   Counts
	ByLabel map[string]*Counts
}

// NewSummary создаёт пустой итог прогона.
func NewSummary(runID string, started time.Time) *Summary {
	return &Summary{
		RunID:   runID,
		Started: started,
		ByLabel: make(map[string]*Counts),
	}
}

// Add учитывает результат изображения в общем итоге и в итоге его метки.
func (s *Summary) Add(r *ImageResult) {
	s.Total.Add(r)
	c, ok := s.ByLabel[r.Label]
	if !ok {
		c = &Counts{}
		s.ByLabel[r.Label] = c
	}
	c.Add(r)
}

// Labels возвращает метки в алфавитном порядке.
func (s *Summary) Labels() []string {
	labels := make([]string, 0, len(s.ByLabel))
	for l := range s.ByLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Correct возвращает число верно классифицированных лиц для метки:
// для with_mask это лица в маске, для without_mask лица без маски.
func (c *Counts) Correct(label string) int {
	switch label {
	case LabelWithMask:
		return c.Masked
	case LabelWithoutMask:
		return c.Unmasked
	}
	return 0
}

// Accuracy доля верных решений среди ожидаемых лиц метки.
func (c *Counts) Accuracy(label string) float64 {
	if c.Expected == 0 {
		return 0
	}
	return float64(c.Correct(label)) / float64(c.Expected)
}

// Duration длительность прогона.
func (s *Summary) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}
