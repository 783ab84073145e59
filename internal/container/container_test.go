package container

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	app "mask-detector/internal/application"
	"mask-detector/internal/infrastructure/storage"
	"mask-detector/internal/infrastructure/vision"
)

type noDetector struct{}

func (noDetector) Detect(*image.Gray) []image.Rectangle { return nil }
func (noDetector) Name() string                         { return "none" }

func TestNew(t *testing.T) {
	d := &app.Detectors{
		Face:         noDetector{},
		FaceFallback: noDetector{},
		LeftEye:      noDetector{},
		RightEye:     noDetector{},
		EyeGlasses:   noDetector{},
	}
	c, err := New(storage.NewMemoryUserRepository(), d, vision.NewProcessor(), app.Options{
		MaskRatio:       app.DefaultMaskRatio,
		NoseMouthFactor: app.DefaultNoseMouthFactor,
	})
	require.NoError(t, err)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.DetectionService)
	require.NotNil(t, c.MaskCheckService)
}

func TestNew_MissingDetectors(t *testing.T) {
	_, err := New(storage.NewMemoryUserRepository(), &app.Detectors{}, vision.NewProcessor(), app.Options{})
	require.ErrorIs(t, err, app.ErrNoDetector)
}

func TestNew_MissingProcessor(t *testing.T) {
	d := &app.Detectors{
		Face:         noDetector{},
		FaceFallback: noDetector{},
		LeftEye:      noDetector{},
		RightEye:     noDetector{},
		EyeGlasses:   noDetector{},
	}
	_, err := New(storage.NewMemoryUserRepository(), d, nil, app.Options{})
	require.ErrorIs(t, err, app.ErrNoProcessor)
}
