package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into one of the stable error
// categories the API reports to callers.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindPreconditionFailed
	KindInternal
)

// Error is an application error with a stable kind and a human-readable
// message. Handlers map it onto an HTTP response; nothing below the
// handler layer knows about HTTP.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// New creates a new application error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new application error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string) *Error         { return New(KindValidation, message) }
func NotFound(message string) *Error           { return New(KindNotFound, message) }
func Forbidden(message string) *Error          { return New(KindForbidden, message) }
func Conflict(message string) *Error           { return New(KindConflict, message) }
func PreconditionFailed(message string) *Error { return New(KindPreconditionFailed, message) }

// HTTPStatus maps an error kind to its HTTP status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable error code string reported in responses
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindPreconditionFailed:
		return "precondition_failed"
	default:
		return "internal_error"
	}
}

// KindOf extracts the kind from err, or KindInternal for unknown errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
