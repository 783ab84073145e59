package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "MASK_CASCADE_DIR", "MASK_FACE_PROVIDER", "MASK_RATIO",
		"MASK_NOSE_MOUTH_FACTOR", "MASK_WORKERS", "MASK_DEBUG", "MASK_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultMaskRatio, cfg.MaskRatio)
	require.Equal(t, DefaultNoseMouthFactor, cfg.NoseMouthFactor)
	require.Equal(t, DefaultWorkers, cfg.Workers)
	require.Equal(t, DefaultFaceProvider, cfg.FaceProvider)
	require.Equal(t, DefaultCascades(), cfg.Cascades)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("MASK_RATIO", "1.5")
	t.Setenv("MASK_WORKERS", "4")
	t.Setenv("MASK_DEBUG", "true")
	t.Setenv("MASK_FACE_PROVIDER", "pigo")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, 1.5, cfg.MaskRatio)
	require.Equal(t, 4, cfg.Workers)
	require.True(t, cfg.Debug)
	require.Equal(t, "pigo", cfg.FaceProvider)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MASK_WORKERS", "many")

	_, err := Load()
	require.ErrorContains(t, err, "MASK_WORKERS")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("MASK_RATIO", "1.5")

	path := filepath.Join(t.TempDir(), "mask.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"cascade_dir: /opt/cascades\n"+
			"mask_ratio: 1.3\n"+
			"nose_mouth_factor: 2\n"+
			"cascades:\n"+
			"  face: haarcascade_frontalface_alt2.xml\n",
	), 0o644))
	t.Setenv("MASK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/opt/cascades", cfg.CascadeDir)
	require.Equal(t, 1.3, cfg.MaskRatio)
	require.Equal(t, 2, cfg.NoseMouthFactor)
	require.Equal(t, "haarcascade_frontalface_alt2.xml", cfg.Cascades.Face)
	require.Equal(t, DefaultCascades().LeftEye, cfg.Cascades.LeftEye)
	require.Equal(t, filepath.Join("/opt/cascades", "haarcascade_frontalface_alt2.xml"), cfg.CascadePath(cfg.Cascades.Face))
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MASK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"zero ratio", func(c *Config) { c.MaskRatio = 0 }, ErrInvalidMaskRatio},
		{"zero factor", func(c *Config) { c.NoseMouthFactor = 0 }, ErrInvalidNoseMouthFactor},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"unknown provider", func(c *Config) { c.FaceProvider = "dlib" }, ErrUnknownProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.modify(cfg)
			require.ErrorIs(t, cfg.Validate(), tc.err)
		})
	}
}

func TestCascadePath(t *testing.T) {
	cfg := New()
	require.Equal(t, "/abs/face.xml", cfg.CascadePath("/abs/face.xml"))
	require.Equal(t, filepath.Join(DefaultCascadeDir(), "nope.xml"), cfg.CascadePath("nope.xml"))

	cfg.CascadeDir = "cascades"
	require.Equal(t, filepath.Join("cascades", "face.xml"), cfg.CascadePath("face.xml"))
}
