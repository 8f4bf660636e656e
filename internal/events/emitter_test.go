package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *TaskEvent {
		t.Helper()
		event, err := NewTaskEvent(TypeTaskCreated, uuid.New(), uuid.New(), nil)
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		successHandler := &MockEventHandler{}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		require.Error(t, err)
		assert.Equal(t, "handler error", err.Error())

		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})

	t.Run("concurrent register and emit", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		event := newEvent(t)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				emitter.RegisterHandler(NewLogHandler(log))
			}()
			go func() {
				defer wg.Done()
				_ = emitter.EmitEvent(context.Background(), event)
			}()
		}
		wg.Wait()
	})
}

func TestLogHandler(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	handler := NewLogHandler(log)

	taskID := uuid.New()
	event, err := NewTaskEvent(TypeTaskStatusChanged, taskID, uuid.New(), StatusChange{From: "CREATED", To: "COMPLETED"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "task activity", entries[0]["msg"])
	assert.Equal(t, "task_audit", entries[0]["component"])
	assert.Equal(t, TypeTaskStatusChanged, entries[0]["event_type"])
	assert.Equal(t, taskID.String(), entries[0]["task_id"])
	logger.AssertLogContains(t, buf, "COMPLETED")
}

func TestLogHandler_PrefersContextLogger(t *testing.T) {
	base, baseBuf := logger.GetTestLogger(t)
	reqLog, reqBuf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), reqLog.With("trace_id", "abc"))

	event, err := NewTaskEvent(TypeTaskDeleted, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	require.NoError(t, NewLogHandler(base).HandleEvent(ctx, event))

	assert.Empty(t, baseBuf.String())
	logger.AssertLogContains(t, reqBuf, `"trace_id":"abc"`)
}
