package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mask-detector/internal/domain/entity"
)

func TestMarkdownSummary_Write(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sum := entity.NewSummary("run-42", started)

	masked := entity.NewImageResult("with_mask/a.jpg", entity.LabelWithMask, 1)
	masked.SetDetected(1)
	masked.Tally(entity.Masked)

	skipped := entity.NewImageResult("without_mask/b.jpg", entity.LabelWithoutMask, 2)
	skipped.SetDetected(1)
	skipped.Tally(entity.Unmasked)

	broken := entity.NewImageResult("without_mask/c.jpg", entity.LabelWithoutMask, 1)
	broken.Err = "unexpected EOF"

	results := []*entity.ImageResult{masked, skipped, broken}
	for _, r := range results {
		sum.Add(r)
	}
	sum.Finished = started.Add(2 * time.Second)

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownSummary(&buf).Write(sum, results))

	out := buf.String()
	require.Contains(t, out, "# Mask Detection Report")
	require.Contains(t, out, "run-42")
	require.Contains(t, out, "with_mask")
	require.Contains(t, out, "100.0%")
	require.Contains(t, out, "50.0%")
	require.Contains(t, out, "mermaid")
	require.Contains(t, out, "## Unreadable images")
	require.Contains(t, out, "without_mask/c.jpg")
}

func TestMarkdownSummary_NoFaces(t *testing.T) {
	sum := entity.NewSummary("empty", time.Now())
	sum.Finished = sum.Started

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownSummary(&buf).Write(sum, nil))
	require.NotContains(t, buf.String(), "mermaid")
	require.NotContains(t, buf.String(), "Unreadable images")
}
