// Package debug сохраняет промежуточные изображения конвейера на диск.
package debug

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"mask-detector/internal/domain/port"
)

// Observer пишет каждый этап в PNG с порядковым номером и логирует события.
type Observer struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	seq   int
	saved []string
}

// NewObserver создаёт каталог dir и observer, пишущий в него.
func NewObserver(dir string, logger *slog.Logger) (*Observer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create debug dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{dir: dir, logger: logger}, nil
}

// Stage сохраняет изображение этапа. Ошибка записи только логируется:
// отладка не должна влиять на результат.
func (o *Observer) Stage(name string, img image.Image) {
	o.mu.Lock()
	o.seq++
	path := filepath.Join(o.dir, fmt.Sprintf("%02d_%s.png", o.seq, name))
	o.mu.Unlock()

	if err := imaging.Save(img, path); err != nil {
		o.logger.Warn("debug stage not saved", "stage", name, "error", err)
		return
	}

	o.mu.Lock()
	o.saved = append(o.saved, path)
	o.mu.Unlock()
	o.logger.Debug("debug stage saved", "stage", name, "path", path)
}

// Event пишет событие конвейера в лог.
func (o *Observer) Event(msg string, keysAndValues ...any) {
	o.logger.Debug(msg, keysAndValues...)
}

// Saved возвращает пути сохранённых файлов.
func (o *Observer) Saved() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.saved...)
}

var _ port.Observer = (*Observer)(nil)
