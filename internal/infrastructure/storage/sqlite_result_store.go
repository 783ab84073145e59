package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // драйвер SQLite

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

// SQLiteResultStore хранит результаты прогонов в файле SQLite, чтобы
// прогоны с разными настройками можно было сравнить.
type SQLiteResultStore struct {
	db *sql.DB
}

// OpenSQLiteResultStore открывает или создаёт базу по пути path.
func OpenSQLiteResultStore(path string) (*SQLiteResultStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// у SQLite один писатель
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteResultStore{db: db}
	if err := s.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteResultStore) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started DATETIME,
		finished DATETIME,
		images INTEGER,
		failed INTEGER,
		expected_faces INTEGER,
		detected_faces INTEGER,
		skipped_face INTEGER,
		skipped_eye INTEGER,
		masked INTEGER,
		unmasked INTEGER,
		over_detected INTEGER
	);

	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		image TEXT NOT NULL,
		label TEXT,
		expected_faces INTEGER,
		detected_faces INTEGER,
		skipped_face INTEGER,
		skipped_eye INTEGER,
		masked INTEGER,
		unmasked INTEGER,
		over_detected INTEGER,
		fallback INTEGER,
		error TEXT,
		UNIQUE(run_id, image)
	);

	CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Write сохраняет результат изображения в его прогоне.
func (s *SQLiteResultStore) Write(ctx context.Context, r *entity.ImageResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO results (
			run_id, image, label, expected_faces, detected_faces,
			skipped_face, skipped_eye, masked, unmasked, over_detected,
			fallback, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Path, r.Label, r.Expected, r.Detected,
		r.SkippedFace, r.SkippedEye, r.Masked, r.Unmasked, r.OverDetected,
		r.UsedFallback, r.Err,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// SaveSummary сохраняет итог прогона.
func (s *SQLiteResultStore) SaveSummary(ctx context.Context, sum *entity.Summary) error {
	t := sum.Total
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			run_id, started, finished, images, failed, expected_faces,
			detected_faces, skipped_face, skipped_eye, masked, unmasked,
			over_detected
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID, sum.Started.UTC(), sum.Finished.UTC(), t.Images, t.Failed, t.Expected,
		t.Detected, t.SkippedFace, t.SkippedEye, t.Masked, t.Unmasked,
		t.OverDetected,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Results возвращает результаты прогона в порядке записи.
func (s *SQLiteResultStore) Results(ctx context.Context, runID string) ([]*entity.ImageResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT image, label, expected_faces, detected_faces, skipped_face,
			skipped_eye, masked, unmasked, over_detected, fallback, error
		FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*entity.ImageResult
	for rows.Next() {
		r := &entity.ImageResult{RunID: runID}
		if err := rows.Scan(
			&r.Path, &r.Label, &r.Expected, &r.Detected, &r.SkippedFace,
			&r.SkippedEye, &r.Masked, &r.Unmasked, &r.OverDetected,
			&r.UsedFallback, &r.Err,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// RunTotals возвращает сохранённые счётчики прогона.
func (s *SQLiteResultStore) RunTotals(ctx context.Context, runID string) (entity.Counts, error) {
	var c entity.Counts
	err := s.db.QueryRowContext(ctx, `
		SELECT images, failed, expected_faces, detected_faces, skipped_face,
			skipped_eye, masked, unmasked, over_detected
		FROM runs WHERE run_id = ?`, runID).Scan(
		&c.Images, &c.Failed, &c.Expected, &c.Detected, &c.SkippedFace,
		&c.SkippedEye, &c.Masked, &c.Unmasked, &c.OverDetected,
	)
	if err != nil {
		return entity.Counts{}, fmt.Errorf("query run %s: %w", runID, err)
	}
	return c, nil
}

// Close закрывает базу.
func (s *SQLiteResultStore) Close() error {
	return s.db.Close()
}

var _ port.ResultWriter = (*SQLiteResultStore)(nil)
