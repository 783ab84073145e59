// Package report формирует сводку прогона оценки в Markdown.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"mask-detector/internal/domain/entity"
)

// MarkdownSummary пишет сводку прогона: общие счётчики, точность по
// меткам и список необработанных изображений.
type MarkdownSummary struct {
	output io.Writer
}

// NewMarkdownSummary создаёт writer сводки.
func NewMarkdownSummary(output io.Writer) *MarkdownSummary {
	return &MarkdownSummary{output: output}
}

// Write выводит сводку.
func (w *MarkdownSummary) Write(sum *entity.Summary, results []*entity.ImageResult) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Mask Detection Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + sum.RunID + "`"},
			{"Started", sum.Started.Format("2006-01-02 15:04:05 MST")},
			{"Duration", sum.Duration().Round(time.Millisecond).String()},
			{"Images", strconv.Itoa(sum.Total.Images)},
			{"Failed", strconv.Itoa(sum.Total.Failed)},
		},
	})
	md.PlainText("")

	w.writeCounts(md, sum)
	w.writeChart(md, sum.Total)
	w.writeFailures(md, results)

	return md.Build()
}

func (w *MarkdownSummary) writeCounts(md *markdown.Markdown, sum *entity.Summary) {
	md.H2("Faces by label")
	md.PlainText("")

	rows := make([][]string, 0, len(sum.ByLabel)+1)
	for _, label := range sum.Labels() {
		rows = append(rows, countsRow(label, sum.ByLabel[label], accuracy(label, sum.ByLabel[label])))
	}
	rows = append(rows, countsRow("**Total**", &sum.Total, "-"))

	md.Table(markdown.TableSet{
		Header: []string{
			"Label", "Expected", "Detected", "Masked", "Unmasked",
			"Skipped (face)", "Skipped (eye)", "Over-detected", "Accuracy",
		},
		Rows: rows,
	})
	md.PlainText("")
}

func countsRow(label string, c *entity.Counts, acc string) []string {
	return []string{
		label,
		strconv.Itoa(c.Expected),
		strconv.Itoa(c.Detected),
		strconv.Itoa(c.Masked),
		strconv.Itoa(c.Unmasked),
		strconv.Itoa(c.SkippedFace),
		strconv.Itoa(c.SkippedEye),
		strconv.Itoa(c.OverDetected),
		acc,
	}
}

// accuracy форматирует долю верных решений. Для меток вне набора
// with_mask/without_mask верного ответа нет.
func accuracy(label string, c *entity.Counts) string {
	if label != entity.LabelWithMask && label != entity.LabelWithoutMask {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", c.Accuracy(label)*100)
}

func (w *MarkdownSummary) writeChart(md *markdown.Markdown, c entity.Counts) {
	if c.Masked+c.Unmasked+c.SkippedFace+c.SkippedEye == 0 {
		md.Note("No faces were expected or found.")
		md.PlainText("")
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Face outcomes"),
		piechart.WithShowData(true),
	)
	for _, part := range []struct {
		label string
		value int
	}{
		{"Masked", c.Masked},
		{"Unmasked", c.Unmasked},
		{"Skipped (face)", c.SkippedFace},
		{"Skipped (eye)", c.SkippedEye},
	} {
		if part.value > 0 {
			chart.LabelAndIntValue(part.label, uint64(part.value))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownSummary) writeFailures(md *markdown.Markdown, results []*entity.ImageResult) {
	var failed []string
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, "`"+r.Path+"`: "+r.Err)
		}
	}
	if len(failed) == 0 {
		return
	}

	md.H2("Unreadable images")
	md.PlainText("")
	md.Warningf("%d image(s) could not be processed.", len(failed))
	md.PlainText("")
	md.BulletList(failed...)
	md.PlainText("")
}
