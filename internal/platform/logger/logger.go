package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/taskman-api/internal/config"
)

type contextKey string

const loggerKey contextKey = "logger"

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger on stdout
// with the configured level and sets it as the default logger.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a JSON logger writing to out. Unknown levels fall back to info
// with a warning written to stderr.
func New(out io.Writer, levelName string) *slog.Logger {
	level, ok := ParseLevel(levelName)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// It returns slog.LevelInfo and false for unknown names.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when none is set.
// A request-scoped logger already carries trace_id, so component loggers only
// use it when present.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
