// Package auth implements the credential core: password hashing and the
// access/refresh token service.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	pbkdf2Iters    = 210_000
	pbkdf2KeyBytes = 64
)

// HashPassword derives a fresh random salt and a PBKDF2-SHA512 hash of the
// password. Both are returned hex encoded. The only failure mode is the
// entropy source, which is fatal for the caller and not retried here.
func HashPassword(password string) (salt, hash string, err error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return salt, hex.EncodeToString(derive(password, raw)), nil
}

// VerifyPassword recomputes the hash of password with the stored salt and
// compares it against expectedHash in constant time. A malformed stored salt
// or hash yields false rather than an error, so callers cannot tell a bad
// record apart from a wrong password.
func VerifyPassword(password, salt, expectedHash string) bool {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(expectedHash)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derive(password, rawSalt), expected) == 1
}

func derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iters, pbkdf2KeyBytes, sha512.New)
}
