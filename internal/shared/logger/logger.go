package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger. LOG_LEVEL overrides the per-env default.
func Setup(env string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: defaultLevel(env),
	}
	if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
		opts.Level = level
	}

	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))

	slog.Info("Logger 초기화", "env", env, "level", opts.Level.Level().String())
}

func defaultLevel(env string) slog.Level {
	switch env {
	case "local", "dev", "development", "test":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
