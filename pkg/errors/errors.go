// Package errors provides structured error types for netscore.
//
// The codes mirror the failure taxonomy of the scoring engine:
//   - RESOLUTION_ERROR: a registry package could not be mapped to a repository
//   - TRANSPORT_ERROR: network, HTTP status or GraphQL failure on a client call
//   - DATA_SHAPE_ERROR: a response was missing fields the metric needs
//   - FILESYSTEM_ERROR: clone or file-read failure in the license workspace
//   - INVALID_INPUT: driver input that is not a supported package URL
//
// # Usage
//
//	err := errors.New(errors.ErrCodeResolution, "no repository for %s", name)
//	if errors.Is(err, errors.ErrCodeResolution) {
//	    // degrade to an all-zero report
//	}
//
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "query %s", repo)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeResolution   Code = "RESOLUTION_ERROR"
	ErrCodeTransport    Code = "TRANSPORT_ERROR"
	ErrCodeDataShape    Code = "DATA_SHAPE_ERROR"
	ErrCodeFilesystem   Code = "FILESYSTEM_ERROR"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
