package vision

import (
	"errors"
	"fmt"
	"io"

	app "mask-detector/internal/application"
	"mask-detector/internal/domain/port"
)

// Поставщики основного детектора лиц.
const (
	ProviderGoCV = "gocv"
	ProviderPigo = "pigo"
)

// Files пути к файлам каскадов.
type Files struct {
	Provider     string
	Face         string // haarcascade_frontalface_default.xml
	FaceFallback string // lbpcascade_frontalface_improved.xml
	LeftEye      string // haarcascade_lefteye_2splits.xml
	RightEye     string // haarcascade_righteye_2splits.xml
	EyeGlasses   string // haarcascade_eye_tree_eyeglasses.xml
	PigoFace     string // facefinder, нужен только для ProviderPigo
	Pigo         PigoParams
}

// Cascades загруженный набор каскадов и обработка изображений над ними.
// Закрывается один раз при остановке.
type Cascades struct {
	Detectors *app.Detectors
	Processor port.ImageProcessor
	closers   []io.Closer
}

// Close освобождает все загруженные каскады.
func (c *Cascades) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Load загружает все каскады. Ошибка любого из них фатальна: уже
// загруженные освобождаются, набор не возвращается.
func Load(files Files) (*Cascades, error) {
	c := &Cascades{Detectors: &app.Detectors{}, Processor: NewProcessor()}

	face, err := c.loadFace(files)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Detectors.Face = face

	for _, item := range []struct {
		name string
		path string
		dst  *port.FeatureDetector
	}{
		{"face_fallback", files.FaceFallback, &c.Detectors.FaceFallback},
		{"left_eye", files.LeftEye, &c.Detectors.LeftEye},
		{"right_eye", files.RightEye, &c.Detectors.RightEye},
		{"eyeglasses", files.EyeGlasses, &c.Detectors.EyeGlasses},
	} {
		cascade, err := c.cascade(item.name, item.path)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		*item.dst = cascade
	}

	return c, nil
}

func (c *Cascades) loadFace(files Files) (port.FeatureDetector, error) {
	switch files.Provider {
	case "", ProviderGoCV:
		return c.cascade("face", files.Face)
	case ProviderPigo:
		return LoadPigo(files.PigoFace, files.Pigo)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, files.Provider)
	}
}

func (c *Cascades) cascade(name, path string) (port.FeatureDetector, error) {
	if path == "" {
		return nil, fmt.Errorf("%s: %w: path is empty", name, ErrCascadeLoad)
	}
	cascade, err := LoadCascade(name, path)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, cascade)
	return cascade, nil
}
