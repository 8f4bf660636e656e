package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/service"
	"github.com/phrazzld/taskman-api/internal/service/auth"
	"github.com/phrazzld/taskman-api/internal/store"
)

// ErrInvalidRequestBody marks a request body that could not be decoded.
var ErrInvalidRequestBody = errors.New("invalid request body")

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequestBody),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrDuplicateUsername),
		errors.Is(err, store.ErrUsernameExists):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, ErrInvalidRequestBody):
		return "Invalid request format"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid task status"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation failed"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, auth.ErrDuplicateUsername),
		errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err: status from
// MapErrorToStatusCode, message from GetSafeErrorMessage (or fallbackMsg for
// 500s when given), and field details for validation errors. The full error
// is logged through shared.RespondWithErrorAndLog.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}

	var opts []shared.ResponseOption
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.HasErrors() {
		opts = append(opts, shared.WithDetails(verr.Errors))
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
