package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom_Idempotent(t *testing.T) {
	classified := From(ErrDuplicateEmail)
	assert.Same(t, ErrDuplicateEmail, classified)
	assert.Same(t, classified, From(classified))
}

func TestFrom_UnclassifiedDefaultsTo500(t *testing.T) {
	classified := From(errors.New("connection refused"))
	assert.Equal(t, KindUnknown, classified.Kind)
	assert.Equal(t, http.StatusInternalServerError, classified.Code)
	// Internal detail must not leak into the wire message.
	assert.NotContains(t, classified.Message, "connection refused")
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, From(nil))
}

func TestFrom_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("resolving subject: %w", ErrUserNotFound)
	classified := From(wrapped)
	assert.Same(t, ErrUserNotFound, classified)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindExpiredCredential, KindOf(ErrExpiredToken))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestCanonicalCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{ErrMissingCredential, http.StatusBadRequest},
		{ErrDuplicateEmail, http.StatusBadRequest},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrBadLogin, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusForbidden},
		{ErrExpiredToken, http.StatusBadRequest},
		{ErrInvalidSubject, http.StatusBadRequest},
		{ErrStoreUnavailable, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code, tt.err.Message)
	}
}
