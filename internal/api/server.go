// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/timesnews/api/internal/news/article"
	"github.com/timesnews/api/internal/news/category"
	"github.com/timesnews/api/internal/news/comment"
	"github.com/timesnews/api/internal/news/page"
	"github.com/timesnews/api/internal/news/poll"
	"github.com/timesnews/api/internal/platform/config"
	"github.com/timesnews/api/internal/platform/constants"
	"github.com/timesnews/api/internal/platform/middleware"
	"github.com/timesnews/api/internal/site/message"
	"github.com/timesnews/api/internal/site/newsletter"
	"github.com/timesnews/api/internal/site/setting"
	"github.com/timesnews/api/internal/users/admin"
	"github.com/timesnews/api/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles account routes (register, login, refresh, profile).
	Auth *auth.Handler

	// Admin handles user administration and the staff dashboard.
	Admin *admin.Handler

	// Category manages the section taxonomy.
	Category *category.Handler

	// Article handles the editorial content lifecycle.
	Article *article.Handler

	// Comment handles reader discussion under articles.
	Comment *comment.Handler

	// Poll handles reader opinion polls.
	Poll *poll.Handler

	// Page handles static pages.
	Page *page.Handler

	// Setting handles site-wide configuration.
	Setting *setting.Handler

	// Message handles the contact form and staff inbox.
	Message *message.Handler

	// Newsletter handles email subscriptions.
	Newsletter *newsletter.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The authentication gate reloads every principal from the account store, so
// role changes and blocks take effect on the very next request.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, accounts middleware.AccountSource, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, accounts))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/admin", h.Admin.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/articles", h.Article.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/polls", h.Poll.Routes())
		api.Mount("/pages", h.Page.Routes())
		api.Mount("/settings", h.Setting.Routes())
		api.Mount("/messages", h.Message.Routes())
		api.Mount("/newsletter", h.Newsletter.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
