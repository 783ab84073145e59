// Package logging настраивает структурированный логгер процесса.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger создаёт текстовый логгер в stderr. В режиме debug выводятся
// события конвейера по каждому лицу.
func NewLogger(debug bool) *slog.Logger {
	return New(os.Stderr, debug)
}

// New создаёт текстовый логгер, пишущий в w.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
