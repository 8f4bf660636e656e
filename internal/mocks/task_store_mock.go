package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore for use with testify/mock.
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// Find is a mock implementation of store.TaskStore.Find
func (m *TestifyMockTaskStore) Find(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx records the call and returns the configured store, or the mock itself.
func (m *TestifyMockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	args := m.Called(tx)
	if s, ok := args.Get(0).(store.TaskStore); ok {
		return s
	}
	return m
}
