package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quiz-me/apiserver/config"
	"github.com/quiz-me/apiserver/internal/auth"
	"github.com/quiz-me/apiserver/internal/cookies"
	"github.com/quiz-me/apiserver/internal/db"
	"github.com/quiz-me/apiserver/internal/handlers"
	"github.com/quiz-me/apiserver/internal/services"
	"github.com/quiz-me/apiserver/internal/store"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	database   *mongo.Database
	logger     *slog.Logger
}

// New constructs a Server: opens the document store, builds the auth core
// from config, and wires the routers.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	database, err := db.Open(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	userRepo := store.NewUserRepository(database)
	deckRepo := store.NewDeckRepository(database)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		_ = database.Client().Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	if err != nil {
		_ = database.Client().Disconnect(ctx)
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	cookieMgr, err := cookies.New(cfg.Auth.CookieSecret, cfg.Auth.CookieSecure)
	if err != nil {
		_ = database.Client().Disconnect(ctx)
		return nil, fmt.Errorf("cookie manager: %w", err)
	}

	provider := services.NewAuthProvider(userRepo, tokens)
	deckService := services.NewDeckService(deckRepo)

	gate := handlers.NewGate(provider, tokens, cookieMgr, cfg.Auth)
	authHandler := handlers.NewAuthHandler(provider, cookieMgr, cfg.Auth)
	deckHandler := handlers.NewDeckHandler(deckService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz(db.Healthcheck(database)))
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler, gate)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.DeckRouter(r, deckHandler, gate)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		database:   database,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown and disconnects the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.database != nil {
		_ = s.database.Client().Disconnect(ctx)
	}
	return s.httpServer.Shutdown(ctx)
}
