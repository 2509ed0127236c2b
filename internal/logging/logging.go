// Package logging builds the application's slog logger. The terminal is owned
// by the UI, so records go to a file through a zerolog backend.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Open creates the log file (and its directory) and returns a logger writing
// to it. The caller closes the returned io.Closer on exit.
func Open(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// New returns a logger writing JSON lines to w.
func New(w io.Writer, level string) *slog.Logger {
	zl := zerolog.New(w).With().Timestamp().Logger()
	handler := slogzerolog.Option{Level: ParseLevel(level), Logger: &zl}.NewZerologHandler()
	return slog.New(handler)
}

// Discard is a logger for tests and for components built without one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
