package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/service"
	"github.com/phrazzld/taskman-api/internal/service/auth"
	"github.com/phrazzld/taskman-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("title", "is required")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation error", verr, http.StatusBadRequest, "Validation failed"},
		{"wrapped validation", fmt.Errorf("create: %w", verr), http.StatusBadRequest, "Validation failed"},
		{"bad body", fmt.Errorf("%w: EOF", ErrInvalidRequestBody), http.StatusBadRequest, "Invalid request format"},
		{"bad id", domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
		{"bad status", domain.ErrInvalidTaskStatus, http.StatusBadRequest, "Invalid task status"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "Authorization header required"},
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"store not found", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"duplicate username", auth.ErrDuplicateUsername, http.StatusConflict, "Username already exists"},
		{"store duplicate", store.ErrUsernameExists, http.StatusConflict, "Username already exists"},
		{
			"service failure",
			&service.TaskServiceError{Operation: "search_tasks", Message: "x", Err: errors.New("db")},
			http.StatusInternalServerError,
			"An unexpected error occurred",
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
		{"nil", nil, http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.message, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation details are included", func(t *testing.T) {
		verr := &domain.ValidationError{}
		verr.Add("status", "is required")

		rr := httptest.NewRecorder()
		HandleAPIError(rr, httptest.NewRequest(http.MethodPatch, "/api/tasks/x/status", nil), verr, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, []domain.FieldError{{Field: "status", Message: "is required"}}, resp.Details)
	})

	t.Run("fallback message only replaces 500s", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret detail"), "Failed to list tasks")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to list tasks", decodeError(t, rr).Error)
		assert.NotContains(t, rr.Body.String(), "secret detail")

		rr = httptest.NewRecorder()
		HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrTaskNotFound, "Failed to get task")
		assert.Equal(t, "Task not found", decodeError(t, rr).Error)
	})
}
