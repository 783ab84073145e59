package vision

import (
	"encoding/binary"
	"image"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/stretchr/testify/require"
)

func TestDetectionRects(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)
	dets := []pigo.Detection{
		{Row: 50, Col: 60, Scale: 40, Q: 9},
		{Row: 50, Col: 150, Scale: 40, Q: 2},  // низкая оценка
		{Row: 10, Col: 190, Scale: 40, Q: 12}, // выходит за край
	}

	rects := detectionRects(dets, 5, bounds)
	require.Equal(t, []image.Rectangle{
		image.Rect(40, 30, 80, 70),
		image.Rect(170, 0, 200, 30),
	}, rects)
}

func TestDetectionRects_OffsetBounds(t *testing.T) {
	bounds := image.Rect(10, 20, 110, 120)
	rects := detectionRects([]pigo.Detection{{Row: 50, Col: 50, Scale: 20, Q: 6}}, 5, bounds)
	require.Equal(t, []image.Rectangle{image.Rect(50, 60, 70, 80)}, rects)
}

func TestNewPigoFaceDetector_ShortCascade(t *testing.T) {
	_, err := NewPigoFaceDetector([]byte{1, 2, 3}, DefaultPigoParams())
	require.ErrorIs(t, err, ErrCascadeLoad)
}

func TestNewPigoFaceDetector_TruncatedTrees(t *testing.T) {
	// заголовок обещает деревья, которых в файле нет
	data := make([]byte, pigoHeaderSize)
	binary.LittleEndian.PutUint32(data[8:], 6)
	binary.LittleEndian.PutUint32(data[12:], 10)

	_, err := NewPigoFaceDetector(data, DefaultPigoParams())
	require.ErrorIs(t, err, ErrCascadeLoad)
}

func TestLoadPigo_MissingFile(t *testing.T) {
	_, err := LoadPigo(filepath.Join(t.TempDir(), "facefinder"), DefaultPigoParams())
	require.ErrorIs(t, err, ErrCascadeLoad)
}

func TestPigoFaceDetector_EmptyImage(t *testing.T) {
	det, err := NewPigoFaceDetector(make([]byte, pigoHeaderSize), DefaultPigoParams())
	require.NoError(t, err)
	require.Equal(t, "pigo", det.Name())
	require.Nil(t, det.Detect(image.NewGray(image.Rect(0, 0, 0, 0))))
	require.Nil(t, det.Detect(nil))
}
