package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence indicates the store failed to serve the request.
	ErrPersistence = errors.New("persistence failure")
)

// Error carries a client-facing message together with its kind and cause.
// errors.Is matches both the kind sentinel and the wrapped cause.
type Error struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

func conflictError(field, message string) *Error {
	return &Error{Kind: ErrConflict, Field: field, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// persistenceError reports "Failed to <action>: <cause>".
func persistenceError(action string, err error) *Error {
	return &Error{Kind: ErrPersistence, Message: fmt.Sprintf("Failed to %s: %v", action, err), Err: err}
}
