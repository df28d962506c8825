// Package errors provides structured error types for gaugegrid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP service and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Two codes carry the rendering contract:
//   - INVALID_CONFIG: the gauge configuration cannot be rendered (non-positive
//     columns, min >= max, empty thresholds while thresholds are shown). It is
//     reported before anything is drawn.
//   - DEGENERATE_LAYOUT: the canvas or the derived geometry is degenerate
//     (zero canvas, radius <= 0). Callers skip drawing for that pass.
//
// The remaining codes cover input data, output formats and internal failures.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "layout.columns must be >= 1, got %d", n)
//	if errors.IsConfigError(err) {
//	    // report, do not draw
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering contract
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeDegenerateLayout Code = "DEGENERATE_LAYOUT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSeries Code = "INVALID_SERIES"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Config creates an INVALID_CONFIG error.
func Config(format string, args ...any) *Error {
	return New(ErrCodeInvalidConfig, format, args...)
}

// Layout creates a DEGENERATE_LAYOUT error.
func Layout(format string, args ...any) *Error {
	return New(ErrCodeDegenerateLayout, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConfigError reports whether err is an INVALID_CONFIG error.
func IsConfigError(err error) bool { return Is(err, ErrCodeInvalidConfig) }

// IsLayoutError reports whether err is a DEGENERATE_LAYOUT error.
func IsLayoutError(err error) bool { return Is(err, ErrCodeDegenerateLayout) }

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
