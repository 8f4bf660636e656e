package mocks

import (
	"errors"
	"sync"
)

// ErrPasswordMismatch is returned by MockPasswordVerifier when ShouldSucceed is false.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	mu    sync.Mutex
	calls []string
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.calls = append(m.calls, hashedPassword)
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}

// CompareCalls returns the hashes Compare was called with, in order.
func (m *MockPasswordVerifier) CompareCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
