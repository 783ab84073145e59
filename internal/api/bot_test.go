package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"mask-detector/internal/domain/entity"
)

func TestFormatResult_NoFaces(t *testing.T) {
	require.Equal(t, msgNoFaces, formatResult(entity.NewImageResult("", "", 0), nil))
}

func TestFormatResult(t *testing.T) {
	res := entity.NewImageResult("", "", 3)
	res.SetDetected(3)
	res.UsedFallback = true

	faces := []*entity.FaceRecord{
		{Index: 0, Classification: entity.Masked},
		{Index: 1, Classification: entity.Unmasked},
		{Index: 2, Classification: entity.Skipped},
	}
	for _, f := range faces {
		res.Tally(f.Classification)
	}

	text := formatResult(res, faces)
	require.Contains(t, text, "Найдено лиц: 3")
	require.Contains(t, text, "запасным каскадом")
	require.Contains(t, text, "Лицо 1: в маске")
	require.Contains(t, text, "Лицо 2: без маски")
	require.Contains(t, text, "Лицо 3: глаза не найдены")
	require.Contains(t, text, "В маске: 1, без маски: 1, пропущено: 1")
}

func TestImageFileID(t *testing.T) {
	id, ok := imageFileID(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	require.Equal(t, "large", id)

	id, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png", FileSize: 1024}})
	require.True(t, ok)
	require.Equal(t, "doc", id)

	_, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}})
	require.False(t, ok)

	_, ok = imageFileID(&tgbotapi.Message{Text: "привет"})
	require.False(t, ok)
}
