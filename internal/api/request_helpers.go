package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/service/auth"
)

// decodeBody decodes and validates a JSON request body. Decode failures come
// back wrapping ErrInvalidRequestBody, except type mismatches on a named
// field, which are reported as a field-level validation error.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			verr := &domain.ValidationError{}
			verr.Add(typeErr.Field, "has the wrong type")
			return verr
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	return shared.ValidateRequest(v)
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		verr := &domain.ValidationError{}
		verr.Add(paramName, "is required")
		return uuid.Nil, verr
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// handleUserIDAndPathUUID extracts the authenticated user ID and a UUID path
// parameter. It writes an error response and returns false if either fails.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// requireUserID returns the authenticated user ID placed in the context by
// the auth middleware, writing a 401 when it is missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return uuid.Nil, false
	}
	return userID, true
}
