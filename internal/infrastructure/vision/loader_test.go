//go:build !gocv
// +build !gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresGoCVBuild(t *testing.T) {
	_, err := Load(Files{
		Provider:     ProviderGoCV,
		Face:         "face.xml",
		FaceFallback: "lbp.xml",
		LeftEye:      "left.xml",
		RightEye:     "right.xml",
		EyeGlasses:   "glasses.xml",
	})
	require.ErrorIs(t, err, ErrBuildTag)
}

func TestLoad_UnknownProvider(t *testing.T) {
	_, err := Load(Files{Provider: "dlib"})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load(Files{Provider: ProviderGoCV})
	require.ErrorIs(t, err, ErrCascadeLoad)
}

func TestLoad_PigoStillNeedsEyeCascades(t *testing.T) {
	_, err := Load(Files{Provider: ProviderPigo, PigoFace: "missing/facefinder", Pigo: DefaultPigoParams()})
	require.ErrorIs(t, err, ErrCascadeLoad)
}
