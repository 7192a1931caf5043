// Package server assembles the reference web application: the sqlite store,
// the auth services, the JSON API, and the HTML pages behind one http.Handler.
// cmd/server runs it standalone; the test fixtures mount it on httptest.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/api"
	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/config"
	"github.com/miniapartment/e2e/internal/rental"
	"github.com/miniapartment/e2e/internal/web"
)

// Server is the assembled application.
type Server struct {
	Store    *rental.Store
	Users    *auth.UserService
	Sessions *auth.SessionService
	Tokens   *auth.TokenService
	Limiter  *auth.LoginLimiter
	Handler  http.Handler

	log zerolog.Logger
}

// Options tunes assembly. The zero value is suitable for production-like
// runs; fixtures override the limiter to keep rate-limit tests deterministic.
type Options struct {
	LimiterConfig *auth.LoginLimiterConfig
}

// New opens the store at cfg.DBPath, seeds the default accounts, and wires
// all routes.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*Server, error) {
	store, err := rental.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	users := auth.NewUserService(store)
	if err := users.SeedDefaults(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.UserEmail, cfg.UserPassword); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed accounts: %w", err)
	}

	sessions := auth.NewSessionService(cfg.RequireSecureCookies())
	tokens := auth.NewTokenService(cfg.JWTSecret)

	limiterCfg := auth.DefaultLoginLimiterConfig
	if opts.LimiterConfig != nil {
		limiterCfg = *opts.LimiterConfig
	}
	limiter := auth.NewLoginLimiter(limiterCfg)

	mw := auth.NewMiddleware(sessions, tokens)
	mux := http.NewServeMux()

	api.NewHandler(store, users, tokens, limiter, log).RegisterRoutes(mux, mw)

	pages, err := web.NewHandler(store, users, sessions, log)
	if err != nil {
		limiter.Stop()
		store.Close()
		return nil, err
	}
	pages.RegisterRoutes(mux, mw)

	return &Server{
		Store:    store,
		Users:    users,
		Sessions: sessions,
		Tokens:   tokens,
		Limiter:  limiter,
		Handler:  accessLog(log, mux),
		log:      log,
	}, nil
}

// Close releases the server's resources.
func (s *Server) Close() error {
	s.Limiter.Stop()
	return s.Store.Close()
}

// accessLog emits one structured line per request.
func accessLog(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
