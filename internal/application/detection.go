package app

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
)

// Options параметры конвейера, передаются явно при создании сервиса.
type Options struct {
	MaskRatio       float64       // порог сравнения областей
	NoseMouthFactor int           // множитель высоты области носа и рта
	Observer        port.Observer // nil, если отладка выключена
}

// DetectionService прогоняет одно изображение через все этапы:
// подготовка, поиск лиц, сегментация кожи, геометрия глаз, решение.
type DetectionService struct {
	proc     port.ImageProcessor
	locator  *FaceLocator
	geometry *GeometryResolver
	decider  MaskDecider
	observer port.Observer
}

// NewDetectionService создаёт конвейер над загруженными каскадами и
// обработкой изображений proc.
func NewDetectionService(d *Detectors, proc port.ImageProcessor, opts Options) (*DetectionService, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if proc == nil {
		return nil, ErrNoProcessor
	}
	return &DetectionService{
		proc:     proc,
		locator:  NewFaceLocator(d.Face, d.FaceFallback),
		geometry: NewGeometryResolver(d.LeftEye, d.RightEye, d.EyeGlasses, opts.NoseMouthFactor),
		decider:  NewMaskDecider(opts.MaskRatio),
		observer: opts.Observer,
	}, nil
}

// Detect обрабатывает изображение и возвращает итог и записи по лицам.
// expected: число лиц по разметке. При expected < 0 разметки нет и
// ожидаемым считается число найденных лиц.
func (s *DetectionService) Detect(ctx context.Context, img image.Image, expected int) (*entity.ImageResult, []*entity.FaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if img == nil || img.Bounds().Empty() {
		return nil, nil, fmt.Errorf("detect: %w", ErrEmptyImage)
	}
	original := imaging.Clone(img)

	stages, err := s.proc.Preprocess(original)
	if err != nil {
		return nil, nil, fmt.Errorf("preprocess: %w", err)
	}
	s.stage("grayscale", stages.Gray)
	s.stage("equalized", stages.Equalized)
	s.stage("blurred", stages.Blurred)

	located := s.locator.Locate(original, stages.Blurred)
	s.event("faces located",
		"count", len(located.Faces),
		"detector", located.Detector,
		"fallback", located.UsedFallback,
	)

	if expected < 0 {
		expected = len(located.Faces)
	}
	result := entity.NewImageResult("", "", expected)
	result.SetDetected(len(located.Faces))
	result.UsedFallback = located.UsedFallback

	faces := make([]*entity.FaceRecord, 0, len(located.Faces))
	for i, lf := range located.Faces {
		face, err := s.processFace(i, lf)
		if err != nil {
			return nil, nil, fmt.Errorf("face %d: %w", i, err)
		}
		result.Tally(face.Classification)
		faces = append(faces, face)
	}

	if s.observer != nil && len(faces) > 0 {
		annotated, err := s.Annotate(original, faces)
		if err != nil {
			return nil, nil, err
		}
		s.stage("faces", annotated)
	}
	return result, faces, nil
}

// processFace выполняет этапы над одним лицом. Лица обрабатываются независимо.
func (s *DetectionService) processFace(i int, lf LocatedFace) (*entity.FaceRecord, error) {
	skin, err := s.proc.SkinMask(lf.Crop)
	if err != nil {
		return nil, fmt.Errorf("skin mask: %w", err)
	}
	gray, err := s.proc.Grayscale(lf.Crop)
	if err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}

	geometry := s.geometry.Resolve(gray)
	var eye, noseMouth int
	if geometry.Found {
		if eye, err = s.proc.CountNonZero(skin.Mask, geometry.Eyes); err != nil {
			return nil, fmt.Errorf("count eye pixels: %w", err)
		}
		if noseMouth, err = s.proc.CountNonZero(skin.Mask, geometry.NoseMouth); err != nil {
			return nil, fmt.Errorf("count nose and mouth pixels: %w", err)
		}
	}
	decision := s.decider.Decide(geometry, eye, noseMouth)

	face := &entity.FaceRecord{
		Index:           i,
		Bounds:          lf.Bounds,
		Crop:            lf.Crop,
		SkinMask:        skin.Mask,
		Geometry:        geometry,
		Classification:  decision.Classification,
		EyePixels:       decision.EyePixels,
		NoseMouthPixels: decision.NoseMouthPixels,
	}

	if s.observer != nil {
		s.stage(fmt.Sprintf("face_%d", i), lf.Crop)
		s.stage(fmt.Sprintf("cr_%d", i), skin.Cr)
		s.stage(fmt.Sprintf("otsu_%d", i), skin.Mask)
		if geometry.Found {
			regions, err := s.proc.DrawBoxes(lf.Crop, regionBoxes(geometry, image.Point{}))
			if err != nil {
				return nil, fmt.Errorf("draw regions: %w", err)
			}
			s.stage(fmt.Sprintf("regions_%d", i), regions)
		}
	}

	if !geometry.Found {
		s.event("eyes not detected, face skipped", "face", i)
		return face, nil
	}
	s.event("mask decision",
		"face", i,
		"result", decision.Classification,
		"eye_pixels", decision.EyePixels,
		"nose_mouth_pixels", decision.NoseMouthPixels,
		"otsu_threshold", skin.Threshold,
	)
	return face, nil
}

func (s *DetectionService) stage(name string, img image.Image) {
	if s.observer != nil {
		s.observer.Stage(name, img)
	}
}

func (s *DetectionService) event(msg string, keysAndValues ...any) {
	if s.observer != nil {
		s.observer.Event(msg, keysAndValues...)
	}
}
