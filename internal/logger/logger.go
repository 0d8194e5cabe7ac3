package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger: text output for development, JSON otherwise.
func New(development bool) *slog.Logger {
	return newWithWriter(os.Stdout, development)
}

func newWithWriter(w io.Writer, development bool) *slog.Logger {
	var handler slog.Handler
	if development {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
