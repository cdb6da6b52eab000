// Package domainerrors defines the structured error model used across service
// boundaries. Every orchestration operation returns one of these instead of
// throwing: callers (HTTP layer, workers) read the code and map it directly to
// a response. Store layers return sentinel errors; services translate them
// here at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error class to callers. Codes are stable API: the HTTP
// layer and clients key on them, so renaming one is a breaking change.
type Code string

const (
	// Generic infrastructure/validation codes.
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeConflict     Code = "CONFLICT"
	CodeTimeout      Code = "TIMEOUT"
	CodeInternal     Code = "INTERNAL"
	// CodeInfra marks store/broker I/O failures. Kept distinct from business
	// codes so callers can treat it as retryable.
	CodeInfra Code = "INFRA_ERROR"

	// Consent workflow codes.
	CodeUserNotFound          Code = "USER_NOT_FOUND"
	CodeNotAMinor             Code = "NOT_A_MINOR"
	CodeConsentAlreadyExists  Code = "CONSENT_ALREADY_EXISTS"
	CodeRecordNotFound        Code = "RECORD_NOT_FOUND"
	CodeConsentAlreadyGranted Code = "CONSENT_ALREADY_GRANTED"
	CodeKBAFailed             Code = "KBA_FAILED"
	CodePaymentFailed         Code = "PAYMENT_FAILED"
	CodeTokenInvalid          Code = "TOKEN_INVALID"
	CodeTokenExpired          Code = "TOKEN_EXPIRED"

	// KBA session codes. Propagated verbatim through the orchestrator.
	CodeSessionNotFound     Code = "SESSION_NOT_FOUND"
	CodeSessionExpired      Code = "SESSION_EXPIRED"
	CodeMaxAttemptsExceeded Code = "MAX_ATTEMPTS_EXCEEDED"
)

// Error carries a code plus a human-readable message and optionally wraps an
// underlying cause for logging.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable via errors.Is/As for logging but is never shown to clients.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that escaped the domain error model.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-safe message from err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
