// Package errors provides structured error types for the Machina application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_* and *_STATE/*_MAP: specification validation failures
//   - NOT_FOUND_*: resource not found
//   - NETWORK_* / REMOTE_*: failures talking to the conversion service
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingInitialState, "initial state %q is not declared", initial)
//	if errors.Is(err, errors.ErrCodeMissingInitialState) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRemoteConversion, origErr, "grammar conversion failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Specification validation errors
	ErrCodeInvalidInput                Code = "INVALID_INPUT"
	ErrCodeInvalidSpec                 Code = "INVALID_SPEC"
	ErrCodeEmptyStates                 Code = "EMPTY_STATES"
	ErrCodeDuplicateState              Code = "DUPLICATE_STATE"
	ErrCodeMissingInitialState         Code = "MISSING_INITIAL_STATE"
	ErrCodeUnknownFinalState           Code = "UNKNOWN_FINAL_STATE"
	ErrCodeMalformedTransitionMap      Code = "MALFORMED_TRANSITION_MAP"
	ErrCodeDanglingTransitionReference Code = "DANGLING_TRANSITION_REFERENCE"
	ErrCodeInvalidFormat               Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound  Code = "SESSION_NOT_FOUND"
	ErrCodeDocumentNotFound Code = "DOCUMENT_NOT_FOUND"

	// Conversion service errors
	ErrCodeNetwork          Code = "NETWORK_ERROR"
	ErrCodeTimeout          Code = "TIMEOUT"
	ErrCodeRemoteConversion Code = "REMOTE_CONVERSION_FAILED"

	// Rendering
	ErrCodeRenderingSkipped Code = "RENDERING_SKIPPED"

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

// IsValidation reports whether err carries one of the specification
// validation codes. Callers use this to route errors to inline field
// display rather than a blocking notification.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSpec, ErrCodeEmptyStates, ErrCodeDuplicateState,
		ErrCodeMissingInitialState, ErrCodeUnknownFinalState,
		ErrCodeMalformedTransitionMap, ErrCodeDanglingTransitionReference:
		return true
	}
	return false
}
