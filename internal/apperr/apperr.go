// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure a service returns is one of these kinds; handlers map the
// kind to an HTTP status without inspecting message text.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindStateConflict
	KindPersistence
)

// Error carries a taxonomy kind plus a human-readable message surfaced
// directly to the API caller.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unexpected error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Msg: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Msg: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Msg: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error       { return &Error{Kind: KindConflict, Msg: msg} }
func StateConflict(msg string) *Error  { return &Error{Kind: KindStateConflict, Msg: msg} }

// Persistence wraps an unexpected store failure. The original error is kept
// for logs; the caller sees only the generic message.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Msg: "erro interno de persistência", Err: err}
}

// KindOf extracts the taxonomy kind from any error chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps an error to the wire contract. Duplicate registrations and
// duplicate pending solicitações answer 400; a donation in the wrong state
// answers 403, same as an authorization denial.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization, KindStateConflict:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
