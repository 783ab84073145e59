package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName имя каталога приложения в XDG-каталогах.
const AppName = "mask-detector"

// Значения по умолчанию
const (
	DefaultFaceProvider    = "gocv"
	DefaultMaskRatio       = 1.2
	DefaultNoseMouthFactor = 3
	DefaultWorkers         = 1
	DefaultPigoMinSize     = 20
	DefaultPigoMinQuality  = 5.0
)

// Ошибки проверки конфигурации
var (
	ErrInvalidMaskRatio       = errors.New("invalid mask ratio: must be positive")
	ErrInvalidNoseMouthFactor = errors.New("invalid nose/mouth factor: must be at least 1")
	ErrInvalidWorkers         = errors.New("invalid workers: must be positive")
	ErrUnknownProvider        = errors.New("unknown face provider: use gocv or pigo")
)

// Cascades имена файлов каскадов. Относительные пути ищутся в CascadeDir.
type Cascades struct {
	Face         string `yaml:"face"`
	FaceFallback string `yaml:"face_fallback"`
	LeftEye      string `yaml:"left_eye"`
	RightEye     string `yaml:"right_eye"`
	EyeGlasses   string `yaml:"eyeglasses"`
	PigoFace     string `yaml:"pigo_face"`
}

type Config struct {
	TelegramToken string

	// CascadeDir каталог с файлами каскадов. Пустое значение означает
	// поиск в $XDG_DATA_HOME/mask-detector/cascades и XDG_DATA_DIRS.
	CascadeDir   string
	FaceProvider string
	Cascades     Cascades

	MaskRatio       float64
	NoseMouthFactor int
	Workers         int
	Debug           bool

	PigoMinSize    int
	PigoMinQuality float64
}

// File YAML-файл с настройками, задаётся переменной MASK_CONFIG.
// Указанные в нём значения перекрывают переменные окружения.
type File struct {
	CascadeDir      *string   `yaml:"cascade_dir"`
	FaceProvider    *string   `yaml:"face_provider"`
	Cascades        *Cascades `yaml:"cascades"`
	MaskRatio       *float64  `yaml:"mask_ratio"`
	NoseMouthFactor *int      `yaml:"nose_mouth_factor"`
	Workers         *int      `yaml:"workers"`
	PigoMinSize     *int      `yaml:"pigo_min_size"`
	PigoMinQuality  *float64  `yaml:"pigo_min_quality"`
}

// DefaultCascades стандартные каскады OpenCV и pigo.
func DefaultCascades() Cascades {
	return Cascades{
		Face:         "haarcascade_frontalface_default.xml",
		FaceFallback: "lbpcascade_frontalface_improved.xml",
		LeftEye:      "haarcascade_lefteye_2splits.xml",
		RightEye:     "haarcascade_righteye_2splits.xml",
		EyeGlasses:   "haarcascade_eye_tree_eyeglasses.xml",
		PigoFace:     "facefinder",
	}
}

// New возвращает конфигурацию со значениями по умолчанию.
func New() *Config {
	return &Config{
		FaceProvider:    DefaultFaceProvider,
		Cascades:        DefaultCascades(),
		MaskRatio:       DefaultMaskRatio,
		NoseMouthFactor: DefaultNoseMouthFactor,
		Workers:         DefaultWorkers,
		PigoMinSize:     DefaultPigoMinSize,
		PigoMinQuality:  DefaultPigoMinQuality,
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := New()
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.CascadeDir = os.Getenv("MASK_CASCADE_DIR")
	if v := os.Getenv("MASK_FACE_PROVIDER"); v != "" {
		cfg.FaceProvider = v
	}

	var err error
	if cfg.MaskRatio, err = envFloat("MASK_RATIO", cfg.MaskRatio); err != nil {
		return nil, err
	}
	if cfg.NoseMouthFactor, err = envInt("MASK_NOSE_MOUTH_FACTOR", cfg.NoseMouthFactor); err != nil {
		return nil, err
	}
	if cfg.Workers, err = envInt("MASK_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.Debug, err = envBool("MASK_DEBUG", false); err != nil {
		return nil, err
	}

	if path := os.Getenv("MASK_CONFIG"); path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Apply(f)
	}

	return cfg, nil
}

// LoadFile читает YAML-файл настроек.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply переносит заданные в файле значения в конфигурацию.
func (c *Config) Apply(f *File) {
	if f.CascadeDir != nil {
		c.CascadeDir = *f.CascadeDir
	}
	if f.FaceProvider != nil {
		c.FaceProvider = *f.FaceProvider
	}
	if f.Cascades != nil {
		mergeCascades(&c.Cascades, *f.Cascades)
	}
	if f.MaskRatio != nil {
		c.MaskRatio = *f.MaskRatio
	}
	if f.NoseMouthFactor != nil {
		c.NoseMouthFactor = *f.NoseMouthFactor
	}
	if f.Workers != nil {
		c.Workers = *f.Workers
	}
	if f.PigoMinSize != nil {
		c.PigoMinSize = *f.PigoMinSize
	}
	if f.PigoMinQuality != nil {
		c.PigoMinQuality = *f.PigoMinQuality
	}
}

func mergeCascades(dst *Cascades, src Cascades) {
	for _, p := range []struct {
		dst *string
		src string
	}{
		{&dst.Face, src.Face},
		{&dst.FaceFallback, src.FaceFallback},
		{&dst.LeftEye, src.LeftEye},
		{&dst.RightEye, src.RightEye},
		{&dst.EyeGlasses, src.EyeGlasses},
		{&dst.PigoFace, src.PigoFace},
	} {
		if p.src != "" {
			*p.dst = p.src
		}
	}
}

// Validate проверяет параметры конвейера.
func (c *Config) Validate() error {
	if c.MaskRatio <= 0 {
		return ErrInvalidMaskRatio
	}
	if c.NoseMouthFactor < 1 {
		return ErrInvalidNoseMouthFactor
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	switch c.FaceProvider {
	case "gocv", "pigo":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.FaceProvider)
	}
	return nil
}

// DefaultCascadeDir каталог каскадов в пользовательском XDG_DATA_HOME.
func DefaultCascadeDir() string {
	return filepath.Join(xdg.DataHome, AppName, "cascades")
}

// CascadePath возвращает путь к файлу каскада.
func (c *Config) CascadePath(file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	if c.CascadeDir != "" {
		return filepath.Join(c.CascadeDir, file)
	}
	if path, err := xdg.SearchDataFile(filepath.Join(AppName, "cascades", file)); err == nil {
		return path
	}
	return filepath.Join(DefaultCascadeDir(), file)
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
