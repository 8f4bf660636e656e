package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// MockUserStore implements store.UserStore for testing.
// Without function overrides it keeps users in memory keyed by username and
// hashes passwords with bcrypt.MinCost, like the real store does.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
		if err != nil {
			return err
		}
		user.HashedPassword = string(hash)
		user.Password = ""
	}

	stored := *user
	m.users[user.Username] = &stored
	return nil
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
