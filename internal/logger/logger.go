// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/zix/internal/config"
)

// New creates a *slog.Logger from cfg writing to stderr and installs it
// as the default logger.
//
// Format "json" produces structured output; "text" produces human-readable
// output with source locations. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to info.
func New(cfg config.LogConfig) *slog.Logger {
	logger := NewWriter(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewWriter is New without the side effect, writing to w.
func NewWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

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

// Discard returns a logger that drops everything. Used in tests and by
// CLI commands that only print results.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
