package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mask-detector/config"
	app "mask-detector/internal/application"
	"mask-detector/internal/domain/port"
	"mask-detector/internal/infrastructure/vision"
	"mask-detector/internal/logging"
)

// Version версия приложения.
const Version = "0.1.0"

// globalFlags флаги, общие для всех команд. Заданные флаги перекрывают
// значения из окружения и файла настроек.
type globalFlags struct {
	cascadeDir string
	provider   string
	ratio      float64
	factor     int
	debug      bool
}

// env окружение команды после загрузки конфигурации.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		e     env
	)

	root := &cobra.Command{
		Use:           "mask-detector",
		Short:         "Heuristic face-mask detector built on cascade classifiers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logging.NewLogger(cfg.Debug)
			slog.SetDefault(e.logger)
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.cascadeDir, "cascade-dir", "", "directory with cascade files (default: XDG data dir)")
	pf.StringVar(&flags.provider, "provider", config.DefaultFaceProvider, "primary face detector: gocv or pigo")
	pf.Float64Var(&flags.ratio, "ratio", config.DefaultMaskRatio, "eye/nose-mouth skin ratio above which a face is masked")
	pf.IntVar(&flags.factor, "factor", config.DefaultNoseMouthFactor, "nose/mouth box height in eye-box heights")
	pf.BoolVar(&flags.debug, "debug", false, "log per-face pipeline events")

	root.AddCommand(
		newEvaluateCmd(&e),
		newDetectCmd(&e),
		newBotCmd(&e),
	)
	return root
}

// apply переносит явно заданные флаги в конфигурацию.
func (f *globalFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("cascade-dir") {
		cfg.CascadeDir = f.cascadeDir
	}
	if changed("provider") {
		cfg.FaceProvider = f.provider
	}
	if changed("ratio") {
		cfg.MaskRatio = f.ratio
	}
	if changed("factor") {
		cfg.NoseMouthFactor = f.factor
	}
	if changed("debug") {
		cfg.Debug = f.debug
	}
}

// visionFiles разрешает пути каскадов из конфигурации.
func visionFiles(cfg *config.Config) vision.Files {
	params := vision.DefaultPigoParams()
	params.MinSize = cfg.PigoMinSize
	params.MinQuality = float32(cfg.PigoMinQuality)

	return vision.Files{
		Provider:     cfg.FaceProvider,
		Face:         cfg.CascadePath(cfg.Cascades.Face),
		FaceFallback: cfg.CascadePath(cfg.Cascades.FaceFallback),
		LeftEye:      cfg.CascadePath(cfg.Cascades.LeftEye),
		RightEye:     cfg.CascadePath(cfg.Cascades.RightEye),
		EyeGlasses:   cfg.CascadePath(cfg.Cascades.EyeGlasses),
		PigoFace:     cfg.CascadePath(cfg.Cascades.PigoFace),
		Pigo:         params,
	}
}

// loadCascades загружает каскады. Ошибка загрузки завершает команду.
func (e *env) loadCascades() (*vision.Cascades, error) {
	cascades, err := vision.Load(visionFiles(e.cfg))
	if err != nil {
		return nil, fmt.Errorf("load cascades: %w", err)
	}
	e.logger.Info("cascades loaded",
		"provider", e.cfg.FaceProvider,
		"face", cascades.Detectors.Face.Name(),
		"fallback", cascades.Detectors.FaceFallback.Name(),
	)
	return cascades, nil
}

func (e *env) options(observer port.Observer) app.Options {
	return app.Options{
		MaskRatio:       e.cfg.MaskRatio,
		NoseMouthFactor: e.cfg.NoseMouthFactor,
		Observer:        observer,
	}
}
