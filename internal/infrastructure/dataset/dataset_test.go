package dataset

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"mask-detector/internal/domain/entity"
)

func writeImage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := imaging.New(8, 6, color.NRGBA{R: 200, G: 150, B: 120, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "without_mask", "b.jpg"))
	writeImage(t, filepath.Join(root, "with_mask", "b.png"))
	writeImage(t, filepath.Join(root, "with_mask", "a.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "with_mask", "notes.txt"), []byte("x"), 0o644))

	samples, err := List(root, ListOptions{GroundTruth: GroundTruth{"with_mask/b.png": 2}})
	require.NoError(t, err)
	require.Equal(t, []entity.Sample{
		{Path: filepath.Join(root, "with_mask", "a.jpg"), Label: entity.LabelWithMask, Expected: 1},
		{Path: filepath.Join(root, "with_mask", "b.png"), Label: entity.LabelWithMask, Expected: 2},
		{Path: filepath.Join(root, "without_mask", "b.jpg"), Label: entity.LabelWithoutMask, Expected: 1},
	}, samples)
}

func TestList_Labels(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "with_mask", "a.jpg"))
	writeImage(t, filepath.Join(root, "without_mask", "a.jpg"))

	samples, err := List(root, ListOptions{Labels: []string{entity.LabelWithoutMask}})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	require.Equal(t, entity.LabelWithoutMask, samples[0].Label)
}

func TestList_NoImages(t *testing.T) {
	_, err := List(t.TempDir(), ListOptions{})
	require.ErrorIs(t, err, ErrNoImages)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.png")
	writeImage(t, path)

	img, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	_, err = Load(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

func TestParseGroundTruth(t *testing.T) {
	truth, err := ParseGroundTruth(strings.NewReader(
		"image,faces\n" +
			"# групповое фото\n" +
			"with_mask/group.jpg, 3\n" +
			"single.png,0\n",
	))
	require.NoError(t, err)
	require.Equal(t, GroundTruth{"with_mask/group.jpg": 3, "single.png": 0}, truth)

	require.Equal(t, 3, truth.Expected(filepath.Join("with_mask", "group.jpg")))
	require.Equal(t, 0, truth.Expected(filepath.Join("without_mask", "single.png")))
	require.Equal(t, DefaultExpectedFaces, truth.Expected("other.jpg"))
}

func TestParseGroundTruth_Errors(t *testing.T) {
	_, err := ParseGroundTruth(strings.NewReader("a.jpg,1\nb.jpg,many\n"))
	require.Error(t, err)

	_, err = ParseGroundTruth(strings.NewReader("a.jpg,-1\n"))
	require.Error(t, err)

	_, err = ParseGroundTruth(strings.NewReader("a.jpg\n"))
	require.Error(t, err)
}

func TestIsImage(t *testing.T) {
	require.True(t, IsImage("x/Y.JPEG"))
	require.True(t, IsImage("scan.webp"))
	require.False(t, IsImage("labels.csv"))
}
