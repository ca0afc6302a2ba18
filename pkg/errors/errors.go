// Package errors provides structured error types for flexgrid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (caller must correct the input)
//   - DEGENERATE_LAYOUT: A well-formed spec that cannot produce a layout
//   - *_NOT_FOUND: Resource not found
//   - CACHE_ERROR, INTERNAL_*: Infrastructure failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScreen, "section %q has no kind", name)
//	if errors.Is(err, errors.ErrCodeInvalidScreen) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCache, origErr, "read %s", key)
//
// Domain packages may define their own error types. Any error exposing a
// Code() method is recognized by [Is] and [GetCode].
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSpec   Code = "INVALID_SPEC"
	ErrCodeInvalidScreen Code = "INVALID_SCREEN"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Layout errors
	ErrCodeDegenerateLayout Code = "DEGENERATE_LAYOUT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeScreenNotFound Code = "SCREEN_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Infrastructure errors
	ErrCodeCache       Code = "CACHE_ERROR"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Coder is implemented by errors that carry a machine-readable code.
type Coder interface {
	Code() Code
}

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

// Is reports whether err has the given error code.
// The outermost coded error in the chain wins.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Both *Error and any error implementing [Coder] are recognized.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		if c, ok := err.(Coder); ok {
			return c.Code()
		}
		err = errors.Unwrap(err)
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

// IsValidation reports whether err is a caller-input problem that retrying
// with the same input cannot fix.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidSpec, ErrCodeInvalidScreen,
		ErrCodeInvalidFormat, ErrCodeInvalidStyle, ErrCodeInvalidPath,
		ErrCodeDegenerateLayout:
		return true
	}
	return false
}
