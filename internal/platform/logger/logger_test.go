package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskman-api/internal/config"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "warn")

	log.Info("dropped")
	log.Warn("kept", slog.String("component", "test"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "test", entry["component"])
}

func TestSetup_SetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	log, err := logger.Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Same(t, log, slog.Default())
}

func TestContextLogger(t *testing.T) {
	fallback, _ := logger.GetTestLogger(t)
	scoped, buf := logger.GetTestLogger(t)

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))

	ctx := logger.WithLogger(context.Background(), scoped.With("trace_id", "abc"))
	logger.FromContextOrDefault(ctx, fallback).Info("hello")

	logger.AssertLogContains(t, buf, `"trace_id":"abc"`)
	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
}
