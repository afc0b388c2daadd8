package logger

import (
	"log/slog"
	"strings"
)

// New builds a slog.Logger from a level name and a handler factory, so
// binaries can pick the Cloud Run JSON handler or the local text handler.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	h := handler(parseLevel(level))
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
