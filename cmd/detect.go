package main

import (
	"context"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	app "mask-detector/internal/application"
	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
	"mask-detector/internal/infrastructure/dataset"
	"mask-detector/internal/infrastructure/debug"
)

type detectFlags struct {
	output   string
	debugDir string
}

func newDetectCmd(e *env) *cobra.Command {
	var flags detectFlags

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Classify every face on a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.Context(), e, args[0], flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "save the image with face, eye and nose/mouth boxes")
	cmd.Flags().StringVar(&flags.debugDir, "debug-dir", "", "save every intermediate stage as PNG into this directory")
	return cmd
}

func runDetect(ctx context.Context, e *env, path string, flags detectFlags, out io.Writer) error {
	img, err := dataset.Load(path)
	if err != nil {
		return err
	}

	var observer port.Observer
	if flags.debugDir != "" {
		obs, err := debug.NewObserver(flags.debugDir, e.logger)
		if err != nil {
			return err
		}
		observer = obs
	}

	cascades, err := e.loadCascades()
	if err != nil {
		return err
	}
	defer func() { _ = cascades.Close() }()

	detection, err := app.NewDetectionService(cascades.Detectors, cascades.Processor, e.options(observer))
	if err != nil {
		return err
	}

	result, faces, err := detection.Detect(ctx, img, -1)
	if err != nil {
		return err
	}
	result.Path = path

	printFaces(out, result, faces)

	if flags.output != "" {
		annotated, err := detection.Annotate(img, faces)
		if err != nil {
			return fmt.Errorf("annotate: %w", err)
		}
		if err := imaging.Save(annotated, flags.output); err != nil {
			return fmt.Errorf("save annotated image: %w", err)
		}
	}
	return nil
}

func printFaces(out io.Writer, result *entity.ImageResult, faces []*entity.FaceRecord) {
	fmt.Fprintf(out, "%s: %d face(s)", result.Path, result.Detected)
	if result.UsedFallback {
		fmt.Fprint(out, " (fallback cascade)")
	}
	fmt.Fprintln(out)

	for _, f := range faces {
		fmt.Fprintf(out, "  face %d at %v: %s", f.Index, f.Bounds, f.Classification)
		if f.Geometry.Found {
			fmt.Fprintf(out, " (eye pixels %d, nose/mouth pixels %d)", f.EyePixels, f.NoseMouthPixels)
		}
		fmt.Fprintln(out)
	}
}
