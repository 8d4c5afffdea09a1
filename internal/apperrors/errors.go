// Package apperrors is the node's single error-code vocabulary, adapted from
// the teacher library's pkg/errors: the same AppError{Code, Message, Err}
// shape and the same HTTP status mapping, with chord-specific codes in place
// of the teacher's REST-resource ones (spec §7).
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes the core distinguishes per spec §7.
const (
	CodeUnreachable = "UNREACHABLE" // connect refused / host down
	CodeTransient   = "TRANSIENT"   // timeout, reset mid-call
	CodeMalformed   = "MALFORMED"   // missing fields, unparseable id
	CodeInternal    = "INTERNAL"
)

// AppError carries a code, a human message, and the underlying cause.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func Unreachable(msg string, err error) *AppError {
	if msg == "" {
		msg = "peer unreachable"
	}
	return New(CodeUnreachable, msg, err)
}

func Transient(msg string, err error) *AppError {
	if msg == "" {
		msg = "transient peer failure"
	}
	return New(CodeTransient, msg, err)
}

func Malformed(msg string, err error) *AppError {
	if msg == "" {
		msg = "malformed response"
	}
	return New(CodeMalformed, msg, err)
}

func Internal(msg string, err error) *AppError {
	if msg == "" {
		msg = "internal error"
	}
	return New(CodeInternal, msg, err)
}

// Recoverable reports whether the core's maintenance loops should silently
// absorb this error and continue, rather than surface it (spec §7's
// propagation policy). Both unreachable and transient peer failures are
// recoverable; malformed responses are too, since they must never be allowed
// to mutate node state. Internal errors are not — they indicate a bug.
func Recoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeUnreachable, CodeTransient, CodeMalformed:
			return true
		}
	}
	return false
}

// HTTPStatus maps an AppError to the HTTP status the inbound dispatch surface
// replies with for malformed requests (spec §7: "the inbound dispatcher
// returns a protocol-level failure for malformed requests but never
// propagates node-internal errors to peers").
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeMalformed:
			return http.StatusBadRequest
		case CodeUnreachable, CodeTransient:
			return http.StatusServiceUnavailable
		case CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// Wrap attaches a message to an error while preserving the chain.
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
