// Package mocks provides centralized mock implementations for testing.
//
// Function-field mocks (MockUserStore, MockJWTService, MockPasswordVerifier)
// fall back to simple in-memory behavior when a field is not set. MockTaskStore
// is an in-memory, mutex-guarded TaskStore, and TestifyMockTaskStore is a
// testify/mock variant for expectation-driven tests.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
