// Package telemetry builds the structured logger and the event tracker used
// across the booking flow.
package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"moviehub-cli/config"
)

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// NewLogger returns a JSON logger writing to w.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}))
}

// OpenLogger picks the sink for interactive commands: the configured log file
// when set, or nothing at all, because the terminal belongs to the UI. The
// returned close func is never nil.
func OpenLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		return NewLogger(cfg, io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", cfg.File)
	}
	return NewLogger(cfg, f), f.Close, nil
}

// Discard is a logger for tests and for callers that were given none.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
