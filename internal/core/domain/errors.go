package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured code.
type DomainError struct {
	Code    string // Error code (e.g., "TB-REC-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// Record errors (REC).
var (
	// ErrRecordNotFound indicates no record is stored under the name.
	ErrRecordNotFound = NewDomainError("TB-REC-4040", "bookmark not found")

	// ErrRecordExists indicates a record already exists under the name.
	ErrRecordExists = NewDomainError("TB-REC-4090", "bookmark already exists")
)

// Stack errors (STK).
var (
	// ErrStackEmpty indicates no ordinal-tagged bookmark exists for the
	// current context.
	ErrStackEmpty = NewDomainError("TB-STK-4040", "bookmark stack empty")
)

// Prompt errors (PRM).
var (
	// ErrPromptCancelled indicates the user aborted interactive input.
	ErrPromptCancelled = NewDomainError("TB-PRM-4990", "cancelled")
)

// Workspace errors (WS).
var (
	// ErrContextNotFound indicates the workspace context does not exist.
	ErrContextNotFound = NewDomainError("TB-WS-4040", "context not found")

	// ErrBufferRestore indicates a single buffer could not be reopened.
	ErrBufferRestore = NewDomainError("TB-WS-4220", "buffer restore failed")
)

// System errors (SYS).
var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("TB-SYS-5000", "internal error")

	// ErrStorage indicates a storage layer error.
	ErrStorage = NewDomainError("TB-SYS-5001", "storage error")
)

// Argument errors (ARG).
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("TB-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TB-ARG-1002", "missing required argument")
)
