// Package apperr defines the structured errors crossing sccmap's pipeline
// boundary. Each error carries a machine-readable [Code], a human-readable
// message, and an optional cause, so callers can branch on the failure
// class without parsing message text.
//
// Codes group into families: INVALID_* for rejected input, *_NOT_FOUND for
// missing resources, *_FAILED and IO_ERROR for stage failures, and the
// INTERNAL_ERROR / UNSUPPORTED catch-alls.
//
//	err := apperr.New(apperr.ErrCodeInvalidInput, "%s line %d: expected 2 fields", name, line)
//	if apperr.Is(err, apperr.ErrCodeInvalidInput) { ... }
//
//	err := apperr.Wrap(apperr.ErrCodeIO, cause, "read %s", path)
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidNaming   Code = "INVALID_NAMING"
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Stage failures
	ErrCodeLayoutFailed Code = "LAYOUT_FAILED"
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeIO           Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and, when wrapping, the cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the errors.Is/As chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error from a code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around cause, preserving it for Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, anywhere in its chain, is an *Error carrying code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first *Error in the chain, or "" when
// there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix from structured errors; plain errors
// pass through unchanged.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
