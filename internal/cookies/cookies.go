// Package cookies carries the refresh token between client and server as a
// signed, HttpOnly, path-scoped cookie. Values are HMAC-signed so a tampered
// cookie is rejected before it ever reaches token verification.
package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const minSecretLength = 32

var (
	ErrNoSecret         = errors.New("cookie secret is required")
	ErrSecretTooShort   = errors.New("cookie secret too short")
	ErrCookieNotFound   = errors.New("cookie not found")
	ErrInvalidFormat    = errors.New("cookie value malformed")
	ErrInvalidSignature = errors.New("cookie signature mismatch")
)

// Manager signs and verifies session cookies with a single HMAC secret.
type Manager struct {
	secret []byte
	secure bool
}

// New constructs a Manager. The secret must be at least 32 bytes; secure
// controls the Secure attribute on every cookie written.
func New(secret string, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: have %d chars, need at least %d", ErrSecretTooShort, len(secret), minSecretLength)
	}
	return &Manager{secret: []byte(secret), secure: secure}, nil
}

// SetSigned writes a signed cookie scoped to path. maxAge is in seconds.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value, path string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    m.sign(value),
		Path:     path,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSigned reads the named cookie and verifies its signature, returning the
// original value.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return m.verify(cookie.Value)
}

// Delete expires the named cookie on the given path.
func (m *Manager) Delete(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) sign(value string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(value))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + signature
}

func (m *Manager) verify(signed string) (string, error) {
	parts := strings.SplitN(signed, "|", 2)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}

	value, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	expected := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expected)) != 1 {
		return "", ErrInvalidSignature
	}
	return string(value), nil
}
