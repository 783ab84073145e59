package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

var csvHeader = []string{
	"image", "label", "expected_faces", "detected_faces",
	"skipped_face", "skipped_eye", "masked", "unmasked",
	"over_detected", "fallback", "error",
}

// CSVResultWriter пишет таблицу результатов, одна строка на изображение.
type CSVResultWriter struct {
	mu     sync.Mutex
	w      *csv.Writer
	closer io.Closer
}

// NewCSVResultWriter пишет таблицу в w и сразу выводит заголовок.
func NewCSVResultWriter(w io.Writer) (*CSVResultWriter, error) {
	cw := &CSVResultWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return cw, nil
}

// CreateCSVResultWriter создаёт файл таблицы. Файл закрывается в Close.
func CreateCSVResultWriter(path string) (*CSVResultWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	cw, err := NewCSVResultWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	cw.closer = f
	return cw, nil
}

// Write добавляет строку результата.
func (c *CSVResultWriter) Write(ctx context.Context, r *entity.ImageResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	record := []string{
		r.Path,
		r.Label,
		strconv.Itoa(r.Expected),
		strconv.Itoa(r.Detected),
		strconv.Itoa(r.SkippedFace),
		strconv.Itoa(r.SkippedEye),
		strconv.Itoa(r.Masked),
		strconv.Itoa(r.Unmasked),
		strconv.Itoa(r.OverDetected),
		strconv.FormatBool(r.UsedFallback),
		r.Err,
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Close сбрасывает буфер и закрывает файл, если writer его открывал.
func (c *CSVResultWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Flush()
	err := c.w.Error()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
		c.closer = nil
	}
	return err
}

var _ port.ResultWriter = (*CSVResultWriter)(nil)
