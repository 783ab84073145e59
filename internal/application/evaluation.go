package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

// ImageLoader читает и декодирует изображение по пути.
type ImageLoader func(path string) (image.Image, error)

// EvaluationService прогоняет конвейер по набору данных и собирает итоги.
type EvaluationService struct {
	detection *DetectionService
	load      ImageLoader
	writers   []port.ResultWriter
	workers   int
	logger    *slog.Logger
	progress  func()
}

// EvaluationOption настраивает EvaluationService.
type EvaluationOption func(*EvaluationService)

// WithWorkers задаёт число изображений, обрабатываемых одновременно.
func WithWorkers(n int) EvaluationOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger задаёт логгер прогона.
func WithLogger(logger *slog.Logger) EvaluationOption {
	return func(s *EvaluationService) {
		s.logger = logger
	}
}

// WithProgress задаёт функцию, вызываемую после каждого изображения.
func WithProgress(fn func()) EvaluationOption {
	return func(s *EvaluationService) {
		s.progress = fn
	}
}

// NewEvaluationService создаёт сервис оценки. По умолчанию изображения
// обрабатываются последовательно.
func NewEvaluationService(detection *DetectionService, load ImageLoader, writers []port.ResultWriter, opts ...EvaluationOption) *EvaluationService {
	s := &EvaluationService{
		detection: detection,
		load:      load,
		writers:   writers,
		workers:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run обрабатывает все изображения. Нечитаемое изображение не прерывает
// прогон: его результат содержит ошибку и нулевые счётчики. Результаты
// передаются писателям в порядке samples.
func (s *EvaluationService) Run(ctx context.Context, samples []entity.Sample) (*entity.Summary, []*entity.ImageResult, error) {
	summary := entity.NewSummary(uuid.NewString(), time.Now())
	s.logger.Info("starting evaluation",
		"run_id", summary.RunID,
		"images", len(samples),
		"workers", s.workers,
	)

	results := make([]*entity.ImageResult, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, sample := range samples {
		i, sample := i, sample // per-iteration copies (go1.22 loopvar semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.evaluate(gctx, sample)
			if err != nil {
				return err
			}
			results[i] = res
			if s.progress != nil {
				s.progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("evaluation cancelled: %w", err)
	}

	for _, res := range results {
		res.RunID = summary.RunID
		summary.Add(res)
		for _, w := range s.writers {
			if err := w.Write(ctx, res); err != nil {
				return nil, nil, fmt.Errorf("write result for %s: %w", res.Path, err)
			}
		}
	}
	summary.Finished = time.Now()

	s.logger.Info("evaluation finished",
		"run_id", summary.RunID,
		"images", summary.Total.Images,
		"failed", summary.Total.Failed,
		"masked", summary.Total.Masked,
		"unmasked", summary.Total.Unmasked,
		"skipped_face", summary.Total.SkippedFace,
		"skipped_eye", summary.Total.SkippedEye,
		"duration", summary.Duration(),
	)
	return summary, results, nil
}

// evaluate обрабатывает одно изображение. Ошибка возвращается только при отмене.
func (s *EvaluationService) evaluate(ctx context.Context, sample entity.Sample) (*entity.ImageResult, error) {
	failed := func(err error) *entity.ImageResult {
		s.logger.Warn("image skipped", "path", sample.Path, "error", err)
		res := entity.NewImageResult(sample.Path, sample.Label, sample.Expected)
		res.Err = err.Error()
		return res
	}

	img, err := s.load(sample.Path)
	if err != nil {
		return failed(err), nil
	}

	res, _, err := s.detection.Detect(ctx, img, sample.Expected)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return failed(err), nil
	}
	res.Path = sample.Path
	res.Label = sample.Label

	s.logger.Debug("image processed",
		"path", sample.Path,
		"expected", res.Expected,
		"detected", res.Detected,
		"masked", res.Masked,
		"unmasked", res.Unmasked,
		"skipped_eye", res.SkippedEye,
	)
	return res, nil
}
