package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskman-api/internal/platform/logger"
)

// LogHandler writes one audit line per event.
type LogHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*LogHandler)(nil)

// NewLogHandler creates a LogHandler writing to the given logger.
func NewLogHandler(log *slog.Logger) *LogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LogHandler{logger: log.With(slog.String("component", "task_audit"))}
}

// HandleEvent implements EventHandler. It never fails.
func (h *LogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("task_id", event.TaskID.String()),
		slog.String("user_id", event.UserID.String()),
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.String("payload", string(event.Payload)))
	}
	log.Info("task activity", attrs...)
	return nil
}
