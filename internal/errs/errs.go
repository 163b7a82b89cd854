// Package errs defines the categorized failures returned by the league engine.
package errs

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	CodeWrongPhase        Code = "WRONG_PHASE"
	CodeMissingDependency Code = "MISSING_DEPENDENCY"
	CodeCapViolation      Code = "CAP_VIOLATION"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeDataIntegrity     Code = "DATA_INTEGRITY"
	CodeInvalidAction     Code = "INVALID_ACTION"
)

// Sentinels for errors.Is checks; matching is by code only.
var (
	ErrWrongPhase        = &Error{Code: CodeWrongPhase, Message: "wrong phase"}
	ErrMissingDependency = &Error{Code: CodeMissingDependency, Message: "missing dependency"}
	ErrCapViolation      = &Error{Code: CodeCapViolation, Message: "cap violation"}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition, Message: "invalid transition"}
	ErrDataIntegrity     = &Error{Code: CodeDataIntegrity, Message: "data integrity"}
	ErrInvalidAction     = &Error{Code: CodeInvalidAction, Message: "invalid action"}
)

// Error is the engine's domain error with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Additional context (phase names, ids)
	Cause    error             // Wrapped underlying error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMetadata creates a domain error carrying metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WrongPhase reports an action or entry submitted against a non-current phase.
func WrongPhase(want, got string) *Error {
	return WithMetadata(CodeWrongPhase,
		fmt.Sprintf("action targets phase %s but current phase is %s", want, got),
		map[string]string{"targetPhase": want, "currentPhase": got})
}

// CodeOf extracts the code from err, or "" when err is not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRecoverable reports whether the caller can correct input and retry
// without losing state.
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case CodeWrongPhase, CodeCapViolation, CodeMissingDependency, CodeInvalidAction:
		return true
	}
	return false
}
