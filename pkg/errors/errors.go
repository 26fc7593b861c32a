// Package errors provides structured error types for exzellenz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP host and the engine
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - DEGENERATE_INPUT: Text that cannot be measured (empty or zero-width ink)
//   - FONT_NOT_LOADED / RESOURCE_FETCH: Font availability problems
//   - RASTERIZATION: Vector-to-raster conversion failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Typed Errors
//
// Three failures carry extra structured data and have their own types:
// [DegenerateInputError], [ResourceFetchError] and [RasterizationError].
// Each exposes a Code method so [GetCode] and [Is] treat them like [*Error].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "padding must be >= 0, got %v", p)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode png")
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
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"

	// Measurement errors
	ErrCodeDegenerateInput Code = "DEGENERATE_INPUT"

	// Font availability errors
	ErrCodeFontNotLoaded Code = "FONT_NOT_LOADED"
	ErrCodeResourceFetch Code = "RESOURCE_FETCH"

	// Output errors
	ErrCodeRasterization Code = "RASTERIZATION"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// coder is implemented by the typed errors of this package.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or typed error with a
// matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
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

// DegenerateInputError reports text that reached measurement with no
// measurable extent. Callers substitute placeholder text before measuring,
// so seeing this error means an upstream guard is missing.
type DegenerateInputError struct {
	Text   string
	Reason string
}

// Error implements the error interface.
func (e *DegenerateInputError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("degenerate input: %s", e.Reason)
	}
	return fmt.Sprintf("degenerate input %q: %s", e.Text, e.Reason)
}

// Code returns the error code for this error type.
func (e *DegenerateInputError) Code() Code {
	return ErrCodeDegenerateInput
}

// ResourceFetchError reports a failed font fetch. Status is the HTTP status
// code, or 0 when the request never produced a response.
type ResourceFetchError struct {
	URL        string
	Status     int
	StatusText string
	Cause      error
}

// Error implements the error interface.
func (e *ResourceFetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: %d %s", e.URL, e.Status, e.StatusText)
	case e.Cause != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
	default:
		return fmt.Sprintf("fetch %s: %s", e.URL, e.StatusText)
	}
}

// Unwrap returns the transport error, if any.
func (e *ResourceFetchError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *ResourceFetchError) Code() Code {
	return ErrCodeResourceFetch
}

// RasterizationError reports that a vector document could not be decoded
// or drawn into a pixel buffer.
type RasterizationError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *RasterizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rasterize: %s: %v", e.Reason, e.Cause)
	}
	return "rasterize: " + e.Reason
}

// Unwrap returns the underlying decode or encode error.
func (e *RasterizationError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *RasterizationError) Code() Code {
	return ErrCodeRasterization
}
