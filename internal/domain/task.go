package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is a free-form progress label. Any status may follow any other.
type TaskStatus string

// Possible task status values
const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusHold       TaskStatus = "HOLD"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

// Field limits for tasks; they match the column sizes in the schema.
const (
	TaskTitleMaxLength       = 100
	TaskDescriptionMaxLength = 500
)

// AllTaskStatuses lists every valid status in display order.
var AllTaskStatuses = []TaskStatus{
	TaskStatusCreated,
	TaskStatusHold,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusFailed,
}

// Task is a unit of work owned by a single user.
// Title and description are fixed after creation; only the status changes.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task for the given owner. The status always starts as CREATED.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      TaskStatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	verr := &ValidationError{}

	if t.ID == uuid.Nil {
		verr.Add("id", "must not be empty")
	}
	if t.UserID == uuid.Nil {
		verr.Add("user_id", "must not be empty")
	}

	switch n := utf8.RuneCountInString(t.Title); {
	case n == 0:
		verr.Add("title", "must not be empty")
	case n > TaskTitleMaxLength:
		verr.Add("title", "must be at most 100 characters long")
	}

	if utf8.RuneCountInString(t.Description) > TaskDescriptionMaxLength {
		verr.Add("description", "must be at most 500 characters long")
	}

	if !t.Status.IsValid() {
		verr.Add("status", ErrInvalidTaskStatus.Error())
	}

	return verr.errOrNil()
}

// UpdateStatus sets a new status and bumps UpdatedAt.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusCreated, TaskStatusHold, TaskStatusInProgress,
		TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts a raw string into a TaskStatus. Matching is case-sensitive.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.IsValid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}
