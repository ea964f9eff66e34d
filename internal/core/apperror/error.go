// Package apperror provides structured error handling for the perishables tool.
// All business errors must use AppError so the CLI can report them consistently.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Infrastructure errors
	CodeInternal = "INTERNAL_ERROR"
	CodeIO       = "IO_ERROR"

	// Validation errors
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeParse        = "PARSE_ERROR"

	// Contract violations (misuse of an API by the caller)
	CodeInvalidState = "INVALID_STATE"

	CodeNotFound = "NOT_FOUND"
)

// Process exit codes returned by the CLI for each error class.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitData     = 3
	ExitIO       = 4
)

// AppError is the standard error type for the tool.
// It implements error interface and provides structured details for logging.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, line number, etc.)
	Details map[string]any `json:"details,omitempty"`

	// ExitCode is the suggested process exit status
	ExitCode int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:     CodeValidation,
		Message:  message,
		ExitCode: ExitData,
	}
}

// NewInvalidInput creates an error for bad flags or configuration values.
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:     CodeInvalidInput,
		Message:  message,
		ExitCode: ExitUsage,
	}
}

// NewParse creates an error for a malformed input line.
func NewParse(line int, field, message string) *AppError {
	return &AppError{
		Code:     CodeParse,
		Message:  message,
		ExitCode: ExitData,
		Details:  map[string]any{"line": line, "field": field},
	}
}

// NewInvalidState creates an error for an operation called in a state where
// it is not defined, e.g. advancing an exhausted cursor.
func NewInvalidState(message string) *AppError {
	return &AppError{
		Code:     CodeInvalidState,
		Message:  message,
		ExitCode: ExitInternal,
	}
}

// NewNotFound creates a not found error.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s not found", entity),
		ExitCode: ExitIO,
		Details:  map[string]any{"entity": entity, "id": id},
	}
}

// NewIO wraps a filesystem failure.
func NewIO(op, path string, err error) *AppError {
	return &AppError{
		Code:     CodeIO,
		Message:  fmt.Sprintf("%s %s", op, path),
		ExitCode: ExitIO,
		Details:  map[string]any{"path": path},
		Err:      err,
	}
}

// NewInternal creates an internal error.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     CodeInternal,
		Message:  "Internal error",
		ExitCode: ExitInternal,
		Err:      err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetExitCode returns the process exit status for any error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if appErr, ok := AsAppError(err); ok && appErr.ExitCode != 0 {
		return appErr.ExitCode
	}
	return ExitInternal
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsInvalidState checks if error is CodeInvalidState
func IsInvalidState(err error) bool {
	return hasCode(err, CodeInvalidState)
}

// IsParse checks if error is CodeParse
func IsParse(err error) bool {
	return hasCode(err, CodeParse)
}

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
