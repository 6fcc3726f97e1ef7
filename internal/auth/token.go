package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quiz-me/apiserver/internal/apierr"
)

// TokenKind distinguishes the two token classes. Each kind signs with its own
// secret, so a token of one kind can never validate as the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// DefaultTokenTTL applies when the issuer is configured without an explicit
// TTL for a kind.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the statements embedded in every issued token. Kind is carried
// in the payload as well as implied by the signing secret, so verification
// checks both.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"knd"`
}

// TokenIssuer issues and verifies signed, time-bounded tokens. Secrets and
// TTLs are injected at construction; there is no package-level state.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer constructs a TokenIssuer. The two secrets must be non-empty
// and distinct; zero TTLs fall back to DefaultTokenTTL.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultTokenTTL
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// Issue signs a token of the given kind asserting subject. An optional TTL
// override replaces the configured expiry for this token only.
func (i *TokenIssuer) Issue(subject string, kind TokenKind, ttlOverride ...time.Duration) (string, error) {
	secret, ttl, err := i.kindParams(kind)
	if err != nil {
		return "", err
	}
	if len(ttlOverride) > 0 {
		ttl = ttlOverride[0]
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	}
	if kind == TokenKindRefresh {
		claims.ID = uuid.New().String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify checks tokenString against the secret for kind and returns its
// claims. An expired token fails with the expired-credential error; every
// other failure, including a kind mismatch or an empty token, reports the
// generic invalid-credential error.
func (i *TokenIssuer) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, _, err := i.kindParams(kind)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierr.ErrExpiredToken
		}
		return nil, apierr.ErrInvalidToken
	}
	if !token.Valid || claims.Kind != kind || strings.TrimSpace(claims.Subject) == "" {
		return nil, apierr.ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) kindParams(kind TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case TokenKindAccess:
		return i.accessSecret, i.accessTTL, nil
	case TokenKindRefresh:
		return i.refreshSecret, i.refreshTTL, nil
	default:
		return nil, 0, errors.New("unknown token kind")
	}
}
