package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventNotFound is returned when a write references an event that does not exist.
var ErrEventNotFound = errors.New("referenced event does not exist")

// ErrDuplicateSlug is returned when an event's slug collides with an existing event.
var ErrDuplicateSlug = errors.New("an event with this slug already exists")

// ValidationError reports a malformed or missing input field. It is always
// recoverable by the caller correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
