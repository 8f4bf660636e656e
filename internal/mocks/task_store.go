package mocks

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore. It applies the same owner
// scoping and filter rules as the PostgreSQL store. Set FindErr to simulate a
// failing search.
type MockTaskStore struct {
	FindErr error

	mu    sync.Mutex
	tasks []*domain.Task
}

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *task
	m.tasks = append(m.tasks, &copied)
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id, ownerID); i >= 0 {
		copied := *m.tasks[i]
		return &copied, nil
	}
	return nil, store.ErrTaskNotFound
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(task.ID, task.UserID)
	if i < 0 {
		return store.ErrTaskNotFound
	}
	m.tasks[i].Status = task.Status
	m.tasks[i].UpdatedAt = task.UpdatedAt
	return nil
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id, ownerID)
	if i < 0 {
		return store.ErrTaskNotFound
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

// Find implements store.TaskStore.Find
func (m *MockTaskStore) Find(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(filter.SearchTerm)
	result := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.UserID != filter.OwnerID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(task.Title), term) &&
			!strings.Contains(strings.ToLower(task.Description), term) {
			continue
		}
		copied := *task
		result = append(result, &copied)
	}
	return result, nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Len returns the number of stored tasks across all owners.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) indexOf(id, ownerID uuid.UUID) int {
	for i, task := range m.tasks {
		if task.ID == id && task.UserID == ownerID {
			return i
		}
	}
	return -1
}
