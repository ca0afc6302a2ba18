package errors

import (
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code Code }

func (e codedError) Error() string { return "coded" }
func (e codedError) Code() Code    { return e.code }

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSpec, "test message: %s", "value")

	if err.Code != ErrCodeInvalidSpec {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSpec)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_SPEC: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCache, cause, "failed to read")

	if err.Code != ErrCodeCache {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCache)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidSpec, "test"),
			code:     ErrCodeInvalidSpec,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidSpec, "test"),
			code:     ErrCodeCache,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCache, New(ErrCodeInvalidSpec, "inner"), "outer"),
			code:     ErrCodeCache,
			expected: true,
		},
		{
			name:     "fmt wrapped coder",
			err:      fmt.Errorf("compute: %w", codedError{ErrCodeDegenerateLayout}),
			code:     ErrCodeDegenerateLayout,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeScreenNotFound, "test"), ErrCodeScreenNotFound},
		{"coder type", codedError{ErrCodeInvalidSpec}, ErrCodeInvalidSpec},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidSpec, "x")) {
		t.Error("INVALID_SPEC should be a validation error")
	}
	if !IsValidation(codedError{ErrCodeDegenerateLayout}) {
		t.Error("DEGENERATE_LAYOUT should be a validation error")
	}
	if IsValidation(New(ErrCodeCache, "x")) {
		t.Error("CACHE_ERROR should not be a validation error")
	}
	if IsValidation(nil) {
		t.Error("nil should not be a validation error")
	}
}
