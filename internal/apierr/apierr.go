// Package apierr normalizes failures raised anywhere in the request path
// into the single error shape the API exposes: a message plus an HTTP-style
// status code, tagged with a machine-checkable kind. Callers branch on the
// kind, never on message text.
package apierr

import (
	"errors"
	"net/http"
)

// Kind identifies the failure class of an Error.
type Kind int

const (
	// KindUnknown covers failures that were never classified; they map to 500.
	KindUnknown Kind = iota
	KindMissingCredential
	KindDuplicateEmail
	KindUserNotFound
	KindInvalidCredential
	KindExpiredCredential
	KindInvalidSubject
	KindStoreUnavailable
)

// Error is the externally visible error shape. Code is an HTTP status.
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with an explicit kind, code, and message.
func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Canonical errors for the authentication domain. Login failures for an
// unknown email and for a wrong password share ErrBadLogin so the two cases
// are indistinguishable to the caller.
var (
	ErrMissingCredential = New(KindMissingCredential, http.StatusBadRequest, "email and/or password not provided")
	ErrDuplicateEmail    = New(KindDuplicateEmail, http.StatusBadRequest, "email provided is already in use")
	ErrUserNotFound      = New(KindUserNotFound, http.StatusNotFound, "user not found")
	ErrBadLogin          = New(KindInvalidCredential, http.StatusBadRequest, "email and/or password incorrect")
	ErrInvalidToken      = New(KindInvalidCredential, http.StatusForbidden, "invalid token, please login")
	ErrExpiredToken      = New(KindExpiredCredential, http.StatusBadRequest, "user not logged in")
	ErrInvalidSubject    = New(KindInvalidSubject, http.StatusBadRequest, "invalid user id")
	ErrUnableToVerify    = New(KindInvalidSubject, http.StatusBadRequest, "unable to verify user status")
	ErrStoreUnavailable  = New(KindStoreUnavailable, http.StatusInternalServerError, "unknown error occurred")
)

// Canonical errors for the deck/card layer.
var (
	ErrInvalidInput = New(KindUnknown, http.StatusBadRequest, "invalid input")
	ErrCreatingDeck = New(KindStoreUnavailable, http.StatusInternalServerError, "error creating deck")
	ErrCreatingCard = New(KindStoreUnavailable, http.StatusInternalServerError, "error creating card")
	ErrUpdatingCard = New(KindStoreUnavailable, http.StatusInternalServerError, "error updating card")
)

// From classifies err into an *Error. Classification is idempotent: an
// already-classified error is returned unchanged, anything else becomes a
// 500-class Error carrying a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	return New(KindUnknown, http.StatusInternalServerError, "unknown error occurred")
}

// KindOf reports the kind err classifies to, KindUnknown when unclassified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}
