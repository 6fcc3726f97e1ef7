package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/internal/auth"
	"github.com/quiz-me/apiserver/internal/store"
	"github.com/quiz-me/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRepository defines the credential-store operations the provider needs.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (types.User, error)
	FindByID(ctx context.Context, id string) (types.User, error)
	Insert(ctx context.Context, user types.User) (bson.ObjectID, error)
}

// TokenPair bundles the access and refresh tokens minted for a session.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthProvider orchestrates registration, login, and subject resolution over
// the credential store, the password hasher, and the token issuer.
type AuthProvider struct {
	repo   UserRepository
	tokens *auth.TokenIssuer
}

func NewAuthProvider(repo UserRepository, tokens *auth.TokenIssuer) *AuthProvider {
	return &AuthProvider{repo: repo, tokens: tokens}
}

// Register creates a new user and returns its id. The email existence check
// and the insert are two separate store operations; the store's unique index
// closes the race between them.
func (p *AuthProvider) Register(ctx context.Context, email, password string, profile types.Profile) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apierr.ErrMissingCredential
	}

	_, err := p.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", apierr.ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return "", apierr.ErrStoreUnavailable
	}

	salt, hash, err := auth.HashPassword(password)
	if err != nil {
		return "", apierr.ErrStoreUnavailable
	}

	// Profile is a closed struct, so caller-supplied email/password/token
	// keys never reach the stored document.
	id, err := p.repo.Insert(ctx, types.User{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		FirstName:    strings.TrimSpace(profile.FirstName),
		LastName:     strings.TrimSpace(profile.LastName),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", apierr.ErrDuplicateEmail
		}
		return "", apierr.ErrStoreUnavailable
	}
	return id.Hex(), nil
}

// Authenticate verifies an email/password pair and mints a token pair bound
// to the user. An unknown email and a wrong password fail identically so the
// response never reveals which one was wrong.
func (p *AuthProvider) Authenticate(ctx context.Context, email, password string) (types.User, TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return types.User{}, TokenPair{}, apierr.ErrMissingCredential
	}

	user, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, TokenPair{}, apierr.ErrBadLogin
		}
		return types.User{}, TokenPair{}, apierr.ErrStoreUnavailable
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return types.User{}, TokenPair{}, apierr.ErrBadLogin
	}

	pair, err := p.mintPair(user.ID.Hex())
	if err != nil {
		return types.User{}, TokenPair{}, apierr.ErrStoreUnavailable
	}
	return user, pair, nil
}

// Resolve looks up a user by id for an already-authenticated request.
func (p *AuthProvider) Resolve(ctx context.Context, userID string) (types.User, error) {
	user, err := p.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apierr.ErrUserNotFound
		}
		return types.User{}, apierr.ErrStoreUnavailable
	}
	return user, nil
}

// RefreshSession verifies a refresh token and rotates the session, returning
// the user with a freshly minted pair. The old refresh token is not tracked
// server-side; it dies by expiry.
func (p *AuthProvider) RefreshSession(ctx context.Context, refreshToken string) (types.User, TokenPair, error) {
	claims, err := p.tokens.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return types.User{}, TokenPair{}, err
	}

	user, err := p.Resolve(ctx, claims.Subject)
	if err != nil {
		return types.User{}, TokenPair{}, err
	}

	pair, err := p.mintPair(user.ID.Hex())
	if err != nil {
		return types.User{}, TokenPair{}, apierr.ErrStoreUnavailable
	}
	return user, pair, nil
}

func (p *AuthProvider) mintPair(subject string) (TokenPair, error) {
	access, err := p.tokens.Issue(subject, auth.TokenKindAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := p.tokens.Issue(subject, auth.TokenKindRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
