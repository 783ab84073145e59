package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GroundTruth ожидаемое число лиц по изображениям. Ключ: путь относительно
// корня набора через "/" или имя файла.
type GroundTruth map[string]int

// Expected возвращает число лиц для относительного пути изображения.
// Путь ищется целиком, затем по имени файла.
func (g GroundTruth) Expected(rel string) int {
	rel = filepath.ToSlash(rel)
	if n, ok := g[rel]; ok {
		return n
	}
	if n, ok := g[filepath.Base(rel)]; ok {
		return n
	}
	return DefaultExpectedFaces
}

// LoadGroundTruth читает файл разметки.
func LoadGroundTruth(path string) (GroundTruth, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseGroundTruth(f)
}

// ParseGroundTruth разбирает CSV вида image,faces. Строка заголовка
// необязательна.
func ParseGroundTruth(r io.Reader) (GroundTruth, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	truth := make(GroundTruth)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse ground truth: %w", err)
		}

		faces, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			if line == 1 {
				continue // заголовок
			}
			return nil, fmt.Errorf("parse ground truth line %d: faces %q: %w", line, record[1], err)
		}
		if faces < 0 {
			return nil, fmt.Errorf("parse ground truth line %d: negative faces %d", line, faces)
		}
		truth[filepath.ToSlash(strings.TrimSpace(record[0]))] = faces
	}
	return truth, nil
}
