// Package vgerrors provides structured error types for the vgraph store.
//
// This package defines error codes and types that enable:
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//   - A clean split between fail-fast usage violations (panicked, never
//     returned) and ordinary returned errors
//
// # Error Codes
//
// Error codes are grouped by kind:
//   - INVALID_*: malformed arguments (bad id, bad handle, bad name, bad step)
//   - DUPLICATE_*: an id or name collides with an existing one
//   - EMPTY_PATH_QUERY: a step query against a path with no steps
//   - *_NOT_FOUND: a lookup-miss that escalated to an error path
//   - CONCURRENT_WRITE: a mutation attempted during an in-flight parallel read
//   - INTERNAL_ERROR: invariant violations that should not be reachable
//
// # Usage
//
//	err := vgerrors.New(vgerrors.ErrCodeInvalidNodeID, "node id %d must be positive", id)
//	if vgerrors.Is(err, vgerrors.ErrCodeInvalidNodeID) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := vgerrors.Wrap(vgerrors.ErrCodeInternal, origErr, "rank lookup failed for node %d", id)
//
// Per the store's error-handling design, usage violations (malformed
// handles, duplicate ids, queries against an empty path) are surfaced by
// panicking with a *vgerrors.Error rather than returning one — they are
// programmer errors with no recovery path, the same rationale Go's own
// runtime uses for out-of-range slice access. Call sites that want to
// convert such a panic back into an error (e.g. at a goroutine boundary)
// can recover and match with Is/GetCode.
package vgerrors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Usage violations (panicked by pkg/vgraph, never returned)
	ErrCodeInvalidNodeID   Code = "INVALID_NODE_ID"
	ErrCodeInvalidHandle   Code = "INVALID_HANDLE"
	ErrCodeInvalidPathName Code = "INVALID_PATH_NAME"
	ErrCodeInvalidStep     Code = "INVALID_STEP"
	ErrCodeDuplicateNodeID Code = "DUPLICATE_NODE_ID"
	ErrCodeDuplicatePath   Code = "DUPLICATE_PATH"
	ErrCodeEmptyPathQuery  Code = "EMPTY_PATH_QUERY"
	ErrCodeConcurrentWrite Code = "CONCURRENT_WRITE"

	// Lookup misses that escalated past a facade boundary into an error
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodePathNotFound Code = "PATH_NOT_FOUND"

	// Internal invariant violations
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

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
