package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
)

// TaskFilter narrows a task search. OwnerID is mandatory; the other fields are
// optional and combined with AND when present.
type TaskFilter struct {
	OwnerID uuid.UUID
	// Status, when set, matches exactly.
	Status *domain.TaskStatus
	// SearchTerm, when non-empty, matches a case-insensitive substring of
	// the title or the description.
	SearchTerm string
}

// TaskStore defines the interface for task persistence.
// Every method that takes an owner only sees that owner's tasks; a task that
// belongs to someone else behaves exactly like a missing one.
type TaskStore interface {
	// Create saves a new task.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by id for the given owner.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Update persists the mutable fields (status, updated_at) of an existing task,
	// matching on both id and owner.
	// Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given id for the given owner.
	// Returns ErrTaskNotFound if no row matched.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// Find returns the owner's tasks matching the filter, oldest first.
	// Returns an empty slice when nothing matches.
	Find(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
