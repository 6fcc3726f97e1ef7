package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/quiz-me/apiserver/config"
	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/internal/auth"
	"github.com/quiz-me/apiserver/internal/cookies"
	"github.com/quiz-me/apiserver/internal/services"
	"github.com/quiz-me/apiserver/types"
)

// Gate guards protected routes. Per request it extracts the access
// credential, verifies it, and resolves the subject; on any failure it writes
// the error envelope itself and the downstream handler never runs.
//
// Exactly one extraction strategy is active per deployment: either the
// Authorization bearer header or a named signed cookie, never both.
type Gate struct {
	provider         *services.AuthProvider
	tokens           *auth.TokenIssuer
	cookies          *cookies.Manager
	source           string
	accessCookieName string
}

func NewGate(provider *services.AuthProvider, tokens *auth.TokenIssuer, cookieMgr *cookies.Manager, cfg config.AuthConfig) *Gate {
	return &Gate{
		provider:         provider,
		tokens:           tokens,
		cookies:          cookieMgr,
		source:           cfg.CredentialSource,
		accessCookieName: cfg.AccessCookieName,
	}
}

// Authenticate runs the full gate check for one request without touching the
// response. It is the pure half of the gate; RequireAuth composes it into
// middleware.
func (g *Gate) Authenticate(r *http.Request) (types.User, error) {
	raw := g.extract(r)
	if raw == "" {
		return types.User{}, apierr.ErrInvalidToken
	}

	claims, err := g.tokens.Verify(raw, auth.TokenKindAccess)
	if err != nil {
		return types.User{}, err
	}

	user, err := g.provider.Resolve(r.Context(), claims.Subject)
	if err != nil {
		if apierr.KindOf(err) == apierr.KindUserNotFound {
			return types.User{}, apierr.ErrInvalidSubject
		}
		return types.User{}, err
	}
	return user, nil
}

// RequireAuth enforces the gate and injects the resolved user into the
// request context.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			writeErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (g *Gate) extract(r *http.Request) string {
	if g.source == config.CredentialSourceCookie {
		value, err := g.cookies.GetSigned(r, g.accessCookieName)
		if err != nil {
			return ""
		}
		return value
	}
	token, err := bearerToken(r)
	if err != nil {
		return ""
	}
	return token
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
