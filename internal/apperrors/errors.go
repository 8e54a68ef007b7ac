package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTierUnavailable indicates that a cache tier's underlying storage is missing or
// unreachable. Callers fall back to the next tier instead of surfacing it.
var ErrTierUnavailable = errors.New("cache tier unavailable")

// ErrMissingClientID indicates the mandatory tenant identifier is absent or malformed.
// This is the only import condition that aborts an operation outright.
var ErrMissingClientID = errors.New("client identifier missing or malformed")

// AppError wraps a lower-level error with an HTTP-ish status code and a message
// suited for logging. Repositories use it so services do not leak driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
