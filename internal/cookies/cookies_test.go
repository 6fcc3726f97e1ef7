package cookies

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew_Validation(t *testing.T) {
	_, err := New("", false)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = New("short", false)
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestSignedRoundTrip(t *testing.T) {
	mgr, err := New(testSecret, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.SetSigned(rec, "refreshToken", "token-value", "/api/auth/refresh", 3600)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/api/auth/refresh", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(cookies[0])

	value, err := mgr.GetSigned(req, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "token-value", value)
}

func TestGetSigned_Missing(t *testing.T) {
	mgr, err := New(testSecret, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = mgr.GetSigned(req, "refreshToken")
	assert.ErrorIs(t, err, ErrCookieNotFound)
}

func TestGetSigned_Tampered(t *testing.T) {
	mgr, err := New(testSecret, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.SetSigned(rec, "refreshToken", "token-value", "/", 3600)
	cookie := rec.Result().Cookies()[0]

	parts := strings.SplitN(cookie.Value, "|", 2)
	require.Len(t, parts, 2)

	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"no separator", parts[0], ErrInvalidFormat},
		{"bad payload encoding", "%%%|" + parts[1], ErrInvalidFormat},
		{"swapped signature", parts[0] + "|AAAA", ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "refreshToken", Value: tt.value})
			_, err := mgr.GetSigned(req, "refreshToken")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetSigned_WrongSecret(t *testing.T) {
	mgr, err := New(testSecret, false)
	require.NoError(t, err)
	other, err := New("fedcba9876543210fedcba9876543210", false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.SetSigned(rec, "refreshToken", "token-value", "/", 3600)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err = other.GetSigned(req, "refreshToken")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	mgr, err := New(testSecret, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.Delete(rec, "refreshToken", "/api/auth/refresh")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
