// Package errs defines the error kinds shared between services and handlers
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrProviderNotFound indicates that a remote provider answered 404 for a resource.
	ErrProviderNotFound = errors.New("resource not found at provider")
)

// NotFoundError reports a missing record or configuration entry.
type NotFoundError struct {
	Entity string
	Field  string
	Value  string
	// Detail overrides the generated message when set.
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s with %s of %s not found", e.Entity, e.Field, e.Value)
}

// NewNotFound creates a NotFoundError for an entity looked up by field
func NewNotFound(entity, field, value string) *NotFoundError {
	return &NotFoundError{Entity: entity, Field: field, Value: value}
}

// Validation wraps ErrValidation with a description of the offending input
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
