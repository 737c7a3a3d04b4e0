package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates the request clashes with the current state
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates a downstream dependency could not serve the request
	ErrUnavailable = errors.New("unavailable")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// ConflictError creates a conflict error with context
func ConflictError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// UnavailableError wraps a downstream failure
func UnavailableError(dependency string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", dependency, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", dependency, ErrUnavailable, cause)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
