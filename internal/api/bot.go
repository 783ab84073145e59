package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "mask-detector/internal/application"
	"mask-detector/internal/container"
	"mask-detector/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот, который проверяет, надета ли на людях на фото маска.

📸 Отправьте мне фото, и я найду лица и скажу, закрыты ли нос и рот.

📋 Команды:
/check — начать проверку фото
/stats — сколько проверок выполнено
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото с лицами
2️⃣ Бот найдёт лица и глаза на них
3️⃣ Вы получите результат по каждому лицу и фото с разметкой

💡 Рекомендации:
• Лица должны смотреть в камеру
• Снимайте при хорошем освещении
• Глаза должны быть видны, иначе лицо будет пропущено

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото для проверки масок."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото для проверки масок."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее фото ещё обрабатывается."
	msgNoFaces         = "🤷 Лица на фото не найдены."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgDecodeError     = "⚠️ Не удалось открыть изображение. Пришлите фото в формате JPEG или PNG."
)

// maxDocumentSize предел размера изображения, присланного файлом.
const maxDocumentSize = 20 << 20

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *container.Container
	logger *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("authorized on account", "user", api.Self.UserName)

	return &Bot{
		api:    api,
		app:    c,
		logger: logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", "user_id", msg.From.ID, "error", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if user.State == entity.StateProcessing {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}

	// Обработка фото
	if fileID, ok := imageFileID(msg); ok {
		b.handlePhoto(ctx, msg, fileID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.app.UserService
	var err error

	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		_, err = users.BeginCheck(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		_, err = users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	case "stats":
		var total, checks int
		total, checks, err = users.Stats(ctx)
		if err == nil {
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("📊 Пользователей: %d\nПроверок: %d", total, checks))
		}

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}

	if err != nil {
		b.logger.Error("command failed", "command", msg.Command(), "user_id", msg.From.ID, "error", err)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.logger.Error("download photo", "user_id", msg.From.ID, "error", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.app.MaskCheckService.Check(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		b.logger.Error("mask check", "user_id", msg.From.ID, "bytes", len(imageData), "error", err)
		if errors.Is(err, app.ErrDecode) {
			b.sendMessage(msg.Chat.ID, msgDecodeError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.logger.Info("mask check done",
		"user_id", msg.From.ID,
		"faces", out.Result.Detected,
		"masked", out.Result.Masked,
		"unmasked", out.Result.Unmasked,
		"skipped_eye", out.Result.SkippedEye,
	)

	text := formatResult(out.Result, out.Faces)
	if out.Annotated == nil {
		b.sendMessage(msg.Chat.ID, text)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "result.jpg", Bytes: out.Annotated})
	photo.Caption = text
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send photo", "chat_id", msg.Chat.ID, "error", err)
		b.sendMessage(msg.Chat.ID, text)
	}
}

// imageFileID возвращает файл с максимальным разрешением из фото или
// изображение, присланное документом.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") && doc.FileSize <= maxDocumentSize {
		return doc.FileID, true
	}
	return "", false
}

// formatResult описывает итог проверки по каждому лицу.
func formatResult(result *entity.ImageResult, faces []*entity.FaceRecord) string {
	if result.Detected == 0 {
		return msgNoFaces
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Найдено лиц: %d\n", result.Detected)
	if result.UsedFallback {
		sb.WriteString("(лица найдены запасным каскадом)\n")
	}
	for _, f := range faces {
		sb.WriteString("\n")
		switch f.Classification {
		case entity.Masked:
			fmt.Fprintf(&sb, "😷 Лицо %d: в маске", f.Index+1)
		case entity.Unmasked:
			fmt.Fprintf(&sb, "🙂 Лицо %d: без маски", f.Index+1)
		default:
			fmt.Fprintf(&sb, "👀 Лицо %d: глаза не найдены, пропущено", f.Index+1)
		}
	}

	fmt.Fprintf(&sb, "\n\nВ маске: %d, без маски: %d, пропущено: %d",
		result.Masked, result.Unmasked, result.SkippedEye)
	return sb.String()
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat_id", chatID, "error", err)
	}
}
