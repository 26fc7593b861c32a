package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to encode")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
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
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeRasterization,
			expected: false,
		},
		{
			name:     "wrapped error uses outer code",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "typed error",
			err:      &ResourceFetchError{URL: "u", Status: 404, StatusText: "Not Found"},
			code:     ErrCodeResourceFetch,
			expected: true,
		},
		{
			name:     "typed error behind fmt wrap",
			err:      fmt.Errorf("export: %w", &DegenerateInputError{Reason: "zero width"}),
			code:     ErrCodeDegenerateInput,
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
		{"Error type", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat},
		{"rasterization", &RasterizationError{Reason: "bad svg"}, ErrCodeRasterization},
		{"degenerate", &DegenerateInputError{}, ErrCodeDegenerateInput},
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

func TestResourceFetchError(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := &ResourceFetchError{URL: "http://x/font.woff", Status: 404, StatusText: "Not Found"}
		expected := "fetch http://x/font.woff: 404 Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &ResourceFetchError{URL: "http://x", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
		if err.Status != 0 {
			t.Errorf("Status = %d, want 0", err.Status)
		}
	})

	t.Run("errors.As through wrap", func(t *testing.T) {
		err := fmt.Errorf("load font: %w", &ResourceFetchError{Status: 503})
		var rfe *ResourceFetchError
		if !errors.As(err, &rfe) || rfe.Status != 503 {
			t.Errorf("errors.As = %v, status = %v", rfe != nil, rfe)
		}
	})
}

func TestRasterizationError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &RasterizationError{Reason: "decode svg", Cause: cause}

	expected := "rasterize: decode svg: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestDegenerateInputError(t *testing.T) {
	if got := (&DegenerateInputError{Reason: "empty text"}).Error(); got != "degenerate input: empty text" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&DegenerateInputError{Text: " ", Reason: "no ink"}).Error(); got != `degenerate input " ": no ink` {
		t.Errorf("Error() = %q", got)
	}
}
