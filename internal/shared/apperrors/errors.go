package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so controllers can map it to an HTTP status
// without inspecting message text.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindNotFound   Kind = "NOT_FOUND"
	KindUpstream   Kind = "UPSTREAM"
	KindInternal   Kind = "INTERNAL"
)

// Error is the stable failure type carried across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a malformed or missing request field. Rejected before
// any mutation.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict reports a request that lost an atomic check (seat no longer
// available, duplicate payment, cancel on a settled payment).
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound reports an unknown booking, payment, seat or ticket credential.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream wraps a failed remote call so it surfaces to the caller instead
// of being swallowed.
func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Internal wraps an unexpected storage or infrastructure failure.
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind onto the HTTP status controllers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the stable human-readable message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
