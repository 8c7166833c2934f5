// Package errors provides structured error types for clusterview.
//
// Errors carry a machine-readable [Code] so that callers can tell a bad
// input (the transcript set violates an algorithm's precondition) from a bad
// configuration (the requested parameters make no sense) without string
// matching.
//
// # Error Codes
//
//   - DATA_INTEGRITY: input records violate a precondition (empty exon list,
//     a read-cluster name without its length token, ...)
//   - CONFIGURATION: an option is out of range (cluster count <= 0, negative
//     minimum region size, unknown strand mode)
//   - INVALID_INPUT, NOT_FOUND, FILE_NOT_FOUND: loader and CLI level failures
//   - INTERNAL_ERROR: unexpected failures
//
// An empty result (no transcripts for the gene, nothing to cluster) is not an
// error and is never reported through this package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDataIntegrity, "no exons to partition")
//	if errors.Is(err, errors.ErrCodeDataIntegrity) {
//	    // reject the gene
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeDataIntegrity Code = "DATA_INTEGRITY"
	ErrCodeConfiguration Code = "CONFIGURATION"

	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidGene  Code = "INVALID_GENE"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// DataIntegrity is shorthand for New(ErrCodeDataIntegrity, ...).
func DataIntegrity(format string, args ...any) *Error {
	return New(ErrCodeDataIntegrity, format, args...)
}

// Configuration is shorthand for New(ErrCodeConfiguration, ...).
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Is reports whether err has the given error code.
// It reports the outermost *Error in the chain.
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
