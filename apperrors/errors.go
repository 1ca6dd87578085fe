// Package apperrors defines the error kinds the API distinguishes and the
// HTTP status each one maps to. Repositories and services return these (or
// wrap them); only controllers translate them into responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports malformed or missing input, keyed by field.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Add appends a message for field and returns e for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func NewValidation(field, msg string) *ValidationError {
	return (&ValidationError{Message: "The given data was invalid."}).Add(field, msg)
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

func NewNotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidStateError reports a value outside an allowed enum, such as an
// unknown task status.
type InvalidStateError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid %s: %s (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func NewInvalidState(field, value string, allowed []string) *InvalidStateError {
	return &InvalidStateError{Field: field, Value: value, Allowed: allowed}
}

// ConflictError reports an operation the current data forbids, like
// deleting a priority that tasks still use.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps err onto a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		invalid    *InvalidStateError
		conflict   *ConflictError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
