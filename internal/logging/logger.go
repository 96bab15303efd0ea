package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog with field helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a logger writing to stderr.
// Development mode uses human-readable text at debug level, otherwise JSON at info level.
func NewLogger(isDevelopment bool) *Logger {
	return New(os.Stderr, isDevelopment)
}

// New creates a logger writing to w
func New(w io.Writer, isDevelopment bool) *Logger {
	var handler slog.Handler
	if isDevelopment {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithFields returns a child logger carrying the given fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.Logger.With(args...)}
}
