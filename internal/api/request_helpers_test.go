package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	id := uuid.New()

	t.Run("valid", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String())
		got, err := getPathUUID(req, "id")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("malformed", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-a-uuid")
		_, err := getPathUUID(req, "id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("missing", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "other", "x")
		_, err := getPathUUID(req, "id")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestHandleUserIDAndPathUUID(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name       string
		userID     uuid.UUID
		param      string
		wantOK     bool
		wantStatus int
	}{
		{"both present", userID, taskID.String(), true, http.StatusOK},
		{"no user", uuid.Nil, taskID.String(), false, http.StatusUnauthorized},
		{"bad id", userID, "123", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != uuid.Nil {
				req = req.WithContext(shared.WithUser(req.Context(), tt.userID, "alice1"))
			}
			req = withURLParam(req, "id", tt.param)
			rr := httptest.NewRecorder()

			gotUser, gotID, ok := handleUserIDAndPathUUID(rr, req, "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if ok {
				assert.Equal(t, tt.userID, gotUser)
				assert.Equal(t, taskID, gotID)
			}
		})
	}
}
