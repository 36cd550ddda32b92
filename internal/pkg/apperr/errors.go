// internal/pkg/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the notification layer
type Kind string

const (
	KindStock        Kind = "stock"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindRemote       Kind = "remote"
	KindDecode       Kind = "decode"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
)

// Error is a user-facing failure. The message is safe to show in a toast.
type Error struct {
	Op      string // e.g. "cart.AddToCart"
	Kind    Kind
	Message string
	Status  int // upstream HTTP status for remote errors, 0 otherwise
	Err     error
}

// Error returns the string representation of the error
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsWarning reports whether the failure should be surfaced as a warning
// rather than an error toast.
func (e *Error) IsWarning() bool {
	return e.Kind == KindStock || e.Kind == KindValidation || e.Kind == KindConflict
}

// HTTPStatus maps the error kind onto a response status
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindStock, KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRemote:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// Stock builds a stock violation warning
func Stock(op, message string) *Error {
	return &Error{Op: op, Kind: KindStock, Message: message}
}

// Validation builds a validation error
func Validation(op, message string) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: message}
}

// NotFound builds a not-found error
func NotFound(op, message string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Message: message}
}

// Conflict builds a conflict error
func Conflict(op, message string) *Error {
	return &Error{Op: op, Kind: KindConflict, Message: message}
}

// Remote builds a remote failure carrying the upstream status
func Remote(op, message string, status int, err error) *Error {
	return &Error{Op: op, Kind: KindRemote, Message: message, Status: status, Err: err}
}

// Decode builds a decoding error for a payload that failed validation
func Decode(op string, err error) *Error {
	return &Error{Op: op, Kind: KindDecode, Message: "Unexpected response from bookkeeping service", Err: err}
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
