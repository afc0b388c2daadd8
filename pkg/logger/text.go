package logger

import (
	"log/slog"
	"os"
)

// NewTextHandler is the local-development handler: human-readable lines on
// stderr instead of Cloud Logging JSON.
func NewTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}
