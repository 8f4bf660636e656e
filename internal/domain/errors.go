package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// ValidationError unwraps to it, so errors.Is works on both.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a task status is not one of the known values.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field-level problem found while validating an entity.
type ValidationError struct {
	Errors []FieldError
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// errOrNil returns nil when no field errors were recorded. It avoids the
// typed-nil interface trap when returning *ValidationError as error.
func (e *ValidationError) errOrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
