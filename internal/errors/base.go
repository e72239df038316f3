package errors

import (
	"errors"
	"fmt"
)

// AppError is the base error type for all application errors
type AppError struct {
	Message  string   // Human-readable error message
	Cause    error    // Underlying error (for wrapping)
	ExitCode ExitCode // Exit code for CLI
}

// Error returns the error message with cause if present
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewError creates a new AppError with the given message and exit code
func NewError(message string, exitCode ExitCode) *AppError {
	return &AppError{
		Message:  message,
		ExitCode: exitCode,
	}
}

// WrapError wraps an existing error with additional context
func WrapError(cause error, message string, exitCode ExitCode) *AppError {
	return &AppError{
		Message:  message,
		Cause:    cause,
		ExitCode: exitCode,
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string) *AppError {
	return NewError(message, ExitConfigError)
}

// NewConfigFileError wraps a failure to read or parse a config file
func NewConfigFileError(path string, cause error) *AppError {
	return WrapError(cause, fmt.Sprintf("failed to load config file %s", path), ExitConfigError)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewError(message, ExitValidationError)
}

// NewIOError wraps a filesystem error for the given path
func NewIOError(path string, cause error) *AppError {
	return WrapError(cause, fmt.Sprintf("file operation failed for %s", path), ExitIOError)
}

// ExitCodeFor extracts the exit code from an error, defaulting to ExitGeneralError
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return ExitGeneralError
}
