package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig    = "CONFIG"
	ErrTransport = "TRANSPORT" // request/connection failed: unreachable, non-2xx, socket closed
	ErrDecode    = "DECODE"    // payload arrived but is not a reading vector
	ErrRender    = "RENDER"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Transport creates a TRANSPORT error for a failed request or connection.
func Transport(err error, format string, args ...interface{}) *Error {
	return &Error{
		Code:    ErrTransport,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Decode creates a DECODE error for a payload that could not be parsed.
func Decode(err error, format string, args ...interface{}) *Error {
	return &Error{
		Code:    ErrDecode,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns a single-line form suitable for log lines.
func (e *Error) Short() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var cbErr *Error
	if errors.As(err, &cbErr) {
		return cbErr.Code == code
	}
	return false
}

// Summary returns a one-line description of err, using Short for structured errors.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var cbErr *Error
	if errors.As(err, &cbErr) {
		return cbErr.Short()
	}
	return err.Error()
}
