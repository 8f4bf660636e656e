// Package service provides application-level services for managing tasks.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskman-api/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates the task does not exist or belongs to another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "search_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Not-found conditions come back as ErrTaskNotFound rather than being wrapped.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
