package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task activity event types.
const (
	TypeTaskCreated       = "task.created"
	TypeTaskStatusChanged = "task.status_changed"
	TypeTaskDeleted       = "task.deleted"
)

// TaskEvent records something that happened to a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	TaskID uuid.UUID `json:"task_id"`
	UserID uuid.UUID `json:"user_id"`

	// Payload contains type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// StatusChange is the payload of a task.status_changed event.
type StatusChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskEvent creates a TaskEvent of the given type. A nil payload leaves
// Payload empty.
func NewTaskEvent(eventType string, taskID, userID uuid.UUID, payload interface{}) (*TaskEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		UserID:    userID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
