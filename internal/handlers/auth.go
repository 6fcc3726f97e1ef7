package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quiz-me/apiserver/config"
	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/internal/cookies"
	"github.com/quiz-me/apiserver/internal/services"
	"github.com/quiz-me/apiserver/types"
)

// AuthHandler provides the registration, login, refresh, and logout
// endpoints and owns the session cookies they set.
type AuthHandler struct {
	provider *services.AuthProvider
	cookies  *cookies.Manager
	cfg      config.AuthConfig
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(provider *services.AuthProvider, cookieMgr *cookies.Manager, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{provider: provider, cookies: cookieMgr, cfg: cfg}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler, gate *Gate) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/refresh", handler.Refresh)
	r.Post("/logout", handler.Logout)
	r.With(gate.RequireAuth).Get("/me", handler.Me)
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the data payload for login and refresh.
type SessionResponse struct {
	User         types.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	userID, err := h.provider.Register(r.Context(), req.Email, req.Password, types.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"userId": userID})
}

// Login verifies credentials, mints a token pair, and sets the session
// cookies.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	user, pair, err := h.provider.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeData(w, http.StatusOK, SessionResponse{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Refresh rotates the session from the refresh cookie: a valid refresh token
// yields a new token pair and a replacement cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := h.cookies.GetSigned(r, h.cfg.RefreshCookieName)
	if err != nil {
		writeErr(w, apierr.ErrInvalidToken)
		return
	}

	user, pair, err := h.provider.RefreshSession(r.Context(), refreshToken)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeData(w, http.StatusOK, SessionResponse{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Logout clears the session cookies. Tokens already issued stay valid until
// they expire; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Delete(w, h.cfg.RefreshCookieName, h.cfg.RefreshCookiePath)
	if h.cfg.CredentialSource == config.CredentialSourceCookie {
		h.cookies.Delete(w, h.cfg.AccessCookieName, "/")
	}
	writeData(w, http.StatusOK, nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeErr(w, apierr.ErrInvalidToken)
		return
	}
	writeData(w, http.StatusOK, map[string]types.User{"user": user})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair services.TokenPair) {
	h.cookies.SetSigned(w, h.cfg.RefreshCookieName, pair.RefreshToken, h.cfg.RefreshCookiePath, int(h.cfg.RefreshTokenTTL.Seconds()))
	if h.cfg.CredentialSource == config.CredentialSourceCookie {
		h.cookies.SetSigned(w, h.cfg.AccessCookieName, pair.AccessToken, "/", int(h.cfg.AccessTokenTTL.Seconds()))
	}
}
