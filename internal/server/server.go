package server

import (
	"context"
	"net/http"
	"time"

	"github.com/landy-dev/organizer-be/internal/auth"
	"github.com/landy-dev/organizer-be/internal/config"
	"github.com/landy-dev/organizer-be/internal/http/handlers"
	"github.com/landy-dev/organizer-be/internal/middleware"
	"github.com/landy-dev/organizer-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewMux wires every route onto a fresh ServeMux. Split out of New so
// tests can drive the full routing table through httptest.
func NewMux(cfg config.Config, store storage.Store) *http.ServeMux {
	mux := http.NewServeMux()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(tokens, next)
	}

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokens, cfg.PasswordMinLen).Register(mux)
	handlers.NewExpensesHandler(store).Register(mux, authed)
	handlers.NewNotesHandler(store).Register(mux, authed)
	handlers.NewTodosHandler(store).Register(mux, authed)

	return mux
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	handler := middleware.CORS(cfg.CORSOrigins, NewMux(cfg, store))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
