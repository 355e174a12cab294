package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a console slog.Logger writing to stderr at the given level.
// Unrecognized level strings select info.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// Component derives a child logger tagged with its owning component. A nil
// base stays nil; components treat a nil logger as "log nothing".
func Component(base *slog.Logger, name string) *slog.Logger {
	if base == nil {
		return nil
	}
	return base.With("component", name)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
