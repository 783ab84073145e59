package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	app "mask-detector/internal/application"
	"mask-detector/internal/domain/entity"
	"mask-detector/internal/domain/port"
	"mask-detector/internal/infrastructure/dataset"
	"mask-detector/internal/infrastructure/report"
	"mask-detector/internal/infrastructure/storage"
)

type evaluateFlags struct {
	workers   int
	csvPath   string
	dbPath    string
	summary   string
	truthPath string
	labels    []string
	noBar     bool
}

func newEvaluateCmd(e *env) *cobra.Command {
	var flags evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate <dataset-dir>",
		Short: "Run the detector over a labelled dataset and report per-image counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				e.cfg.Workers = flags.workers
			}
			return runEvaluate(cmd.Context(), e, args[0], flags, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.workers, "workers", "w", 1, "images processed concurrently")
	f.StringVar(&flags.csvPath, "csv", "", "write per-image results to a CSV file")
	f.StringVar(&flags.dbPath, "db", "", "store results in an SQLite database")
	f.StringVar(&flags.summary, "summary", "", "write a Markdown summary")
	f.StringVar(&flags.truthPath, "truth", "", "CSV with expected face counts (image,faces)")
	f.StringSliceVar(&flags.labels, "labels", nil, "only evaluate these label directories")
	f.BoolVar(&flags.noBar, "no-progress", false, "disable the progress bar")
	return cmd
}

func runEvaluate(ctx context.Context, e *env, dir string, flags evaluateFlags, out io.Writer) error {
	if e.cfg.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", e.cfg.Workers)
	}

	opts := dataset.ListOptions{Labels: flags.labels}
	if flags.truthPath != "" {
		truth, err := dataset.LoadGroundTruth(flags.truthPath)
		if err != nil {
			return err
		}
		opts.GroundTruth = truth
	}
	samples, err := dataset.List(dir, opts)
	if err != nil {
		return err
	}

	cascades, err := e.loadCascades()
	if err != nil {
		return err
	}
	defer func() { _ = cascades.Close() }()

	detection, err := app.NewDetectionService(cascades.Detectors, cascades.Processor, e.options(nil))
	if err != nil {
		return err
	}

	var (
		writers []port.ResultWriter
		db      *storage.SQLiteResultStore
	)
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				e.logger.Warn("close result writer", "error", err)
			}
		}
	}()
	if flags.csvPath != "" {
		w, err := storage.CreateCSVResultWriter(flags.csvPath)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}
	if flags.dbPath != "" {
		db, err = storage.OpenSQLiteResultStore(flags.dbPath)
		if err != nil {
			return err
		}
		writers = append(writers, db)
	}

	evalOpts := []app.EvaluationOption{
		app.WithWorkers(e.cfg.Workers),
		app.WithLogger(e.logger),
	}
	if !flags.noBar {
		bar := progressbar.NewOptions(len(samples),
			progressbar.OptionSetDescription("😷 Evaluating"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		evalOpts = append(evalOpts, app.WithProgress(func() { _ = bar.Add(1) }))
		defer func() { _ = bar.Finish() }()
	}

	sum, results, err := app.NewEvaluationService(detection, dataset.Load, writers, evalOpts...).Run(ctx, samples)
	if err != nil {
		return err
	}

	if db != nil {
		if err := db.SaveSummary(ctx, sum); err != nil {
			return err
		}
	}
	if flags.summary != "" {
		if err := writeSummary(flags.summary, sum, results); err != nil {
			return err
		}
	}

	return printSummary(out, sum)
}

func writeSummary(path string, sum *entity.Summary, results []*entity.ImageResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := report.NewMarkdownSummary(f).Write(sum, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	return f.Close()
}

// printSummary выводит счётчики по меткам в виде таблицы.
func printSummary(out io.Writer, sum *entity.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s: %d images, %d unreadable, %s\n\n",
		sum.RunID, sum.Total.Images, sum.Total.Failed, sum.Duration().Round(time.Millisecond))
	fmt.Fprintln(tw, "label\texpected\tdetected\tmasked\tunmasked\tskipped_face\tskipped_eye\tover_detected")

	row := func(label string, c *entity.Counts) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			label, c.Expected, c.Detected, c.Masked, c.Unmasked, c.SkippedFace, c.SkippedEye, c.OverDetected)
	}
	for _, label := range sum.Labels() {
		row(label, sum.ByLabel[label])
	}
	row("total", &sum.Total)
	return tw.Flush()
}
