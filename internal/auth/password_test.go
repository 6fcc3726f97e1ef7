package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	salt, hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, salt)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("secret1", salt, hash))
}

func TestHashPassword_DistinctSaltPerCall(t *testing.T) {
	salt1, hash1, err := HashPassword("secret1")
	require.NoError(t, err)
	salt2, hash2, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	salt, hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("secret2", salt, hash))
	assert.False(t, VerifyPassword("", salt, hash))
}

func TestVerifyPassword_MalformedRecord(t *testing.T) {
	salt, hash, err := HashPassword("secret1")
	require.NoError(t, err)

	tests := []struct {
		name string
		salt string
		hash string
	}{
		{"bad salt hex", "not-hex!!", hash},
		{"bad hash hex", salt, "zzzz"},
		{"empty salt", "", hash},
		{"empty hash", salt, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("secret1", tt.salt, tt.hash))
		})
	}
}
