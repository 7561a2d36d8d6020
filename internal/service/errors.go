package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both a genuinely missing recipe and one owned by
	// someone else; callers cannot tell the difference.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals creation of a resource that must be unique per
	// owner, such as a second preference profile.
	ErrConflict = errors.New("resource already exists")

	// ErrGenerationUnavailable signals that the upstream generation
	// service was unreachable, timed out, or returned an unusable payload.
	// Nothing is retried; the caller may try again later.
	ErrGenerationUnavailable = errors.New("recipe generation unavailable")
)

// ValidationError carries field-level detail for malformed input. It is
// always raised before any repository call.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem with a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps an unexpected storage failure. The operation name
// travels with the error for logging; the raw cause never reaches the
// caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
