package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
	Code    int                 `json:"-"` // Not serialized to JSON, used for logging
	TraceID string              `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize error responses.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
	details         []domain.FieldError
}

// WithElevatedLogLevel raises 4xx errors to WARN level instead of DEBUG.
// Use for operational issues such as repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithDetails attaches field-level errors to the response body.
func WithDetails(details []domain.FieldError) ResponseOption {
	return func(opts *responseOptions) {
		opts.details = details
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes a JSON error response and logs the underlying
// error. Only userMessage (and any details) reach the client; the error itself
// is redacted and logged.
//
// 5xx responses log at ERROR, 4xx at DEBUG unless WithElevatedLogLevel is set.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if userID, ok := UserIDFromContext(r.Context()); ok {
		logAttrs = append(logAttrs, slog.String("user_id", userID.String()))
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		Details: responseOpts.details,
		Code:    status,
		TraceID: traceID,
	})
}
