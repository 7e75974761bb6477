package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors callers may check with errors.Is().
var (
	// ErrDecode indicates an entries document could not be decoded.
	ErrDecode = errors.New("invalid entries document")

	// ErrNilScheme indicates an operation was called without a scheme.
	ErrNilScheme = errors.New("compatibility scheme cannot be nil")
)

// EntryServiceError is a custom error type for entry service errors.
type EntryServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for EntryServiceError.
func (e *EntryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("entry service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("entry service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EntryServiceError) Unwrap() error {
	return e.Err
}

// NewEntryServiceError creates a new EntryServiceError.
func NewEntryServiceError(operation, message string, err error) *EntryServiceError {
	return &EntryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
