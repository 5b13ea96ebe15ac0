// Package apperrors defines the error taxonomy shared by services, repositories
// and HTTP handlers, and the mapping from each kind to an HTTP status.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConfiguration
	KindTransientStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindAuthentication:
		return "authentication_error"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration_error"
	case KindTransientStore:
		return "store_error"
	default:
		return "internal_error"
	}
}

// Error is the single error type carried across layers. Message is safe to
// show to clients; Err is the wrapped cause and is only logged.
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

func (e *Error) Unwrap() error { return e.Err }

// Is matches the package sentinels by kind, so callers can write
// errors.Is(err, apperrors.ErrForbidden).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrForbidden      = &Error{Kind: KindForbidden}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrTransientStore = &Error{Kind: KindTransientStore}
)

// InvalidResetCode is the only message a client ever sees for a rejected reset code.
const InvalidResetCode = "invalid or expired reset code"

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Configuration(msg string) error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// TransientStore wraps a persistence failure. No retry happens at this layer.
func TransientStore(op string, err error) error {
	return &Error{Kind: KindTransientStore, Message: "storage failure", Err: fmt.Errorf("%s: %w", op, err)}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-facing message, hiding causes of internal errors.
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	switch e.Kind {
	case KindConfiguration, KindTransientStore, KindUnknown:
		return "internal server error"
	}
	return e.Message
}

func Code(err error) string {
	return KindOf(err).String()
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
