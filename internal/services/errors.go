// Package services defines the business logic for user profiles, cards and
// sign-in. This file declares the closed error taxonomy every service
// operation resolves to on failure.
//
// Each Kind is bound to one HTTP status and one default message. Services
// return *Error values; the HTTP layer only reads Kind and Message and never
// inspects the wrapped cause, which is kept for logs.
package services

import (
	"errors"
	"net/http"
)

// Kind is one member of the client-facing error taxonomy.
type Kind int

// Taxonomy members. The zero value is KindInternal so an unset kind degrades
// to a server error.
const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Default messages per kind.
const (
	MsgInvalidData    = "invalid data"
	MsgAuthRequired   = "authorization required"
	MsgNotFound       = "resource not found"
	MsgAlreadyExists  = "resource already exists"
	MsgInternalServer = "internal server error"
)

// Status returns the HTTP status bound to k.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage returns the message used when an operation supplies none.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindBadRequest:
		return MsgInvalidData
	case KindUnauthorized:
		return MsgAuthRequired
	case KindNotFound:
		return MsgNotFound
	case KindConflict:
		return MsgAlreadyExists
	default:
		return MsgInternalServer
	}
}

// String names the kind.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "InternalServerError"
	}
}

// Error is the failure result of a service operation.
type Error struct {
	Kind    Kind
	Message string // client-safe text
	Err     error  // underlying cause, for logs only
}

// Error implements error. It never includes the cause.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.DefaultMessage()
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error { return e.Err }

// Status is shorthand for e.Kind.Status().
func (e *Error) Status() int { return e.Kind.Status() }

// NewError builds an *Error, filling in the default message when msg is empty.
func NewError(kind Kind, msg string, cause error) *Error {
	if msg == "" {
		msg = kind.DefaultMessage()
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// AsError extracts a service *Error. Anything else is wrapped as
// KindInternal with the default message.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return NewError(KindInternal, "", err)
}
