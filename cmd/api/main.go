// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Command api is the entry point for the TimesNews HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timesnews/api/internal/api"
	"github.com/timesnews/api/internal/news/article"
	"github.com/timesnews/api/internal/news/category"
	"github.com/timesnews/api/internal/news/comment"
	"github.com/timesnews/api/internal/news/page"
	"github.com/timesnews/api/internal/news/poll"
	"github.com/timesnews/api/internal/platform/config"
	"github.com/timesnews/api/internal/platform/constants"
	"github.com/timesnews/api/internal/platform/migration"
	pgstore "github.com/timesnews/api/internal/platform/postgres"
	redisstore "github.com/timesnews/api/internal/platform/redis"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/internal/site/message"
	"github.com/timesnews/api/internal/site/newsletter"
	"github.com/timesnews/api/internal/site/setting"
	"github.com/timesnews/api/internal/users/admin"
	"github.com/timesnews/api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		constants.AuthIssuer,
	)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService)
	authHandler := auth.NewHandler(authService)

	categoryRepository := category.NewRepository(pool)
	categoryService := category.NewService(categoryRepository)
	categoryHandler := category.NewHandler(categoryService)

	articleRepository := article.NewRepository(pool)
	viewCounter := article.NewRedisViewCounter(rdb)
	articleService := article.NewService(articleRepository, viewCounter, log)
	articleHandler := article.NewHandler(articleService)

	commentRepository := comment.NewRepository(pool)
	commentService := comment.NewService(commentRepository, articleRepository)
	commentHandler := comment.NewHandler(commentService)

	pollRepository := poll.NewRepository(pool)
	voterRegistry := poll.NewRedisVoterRegistry(rdb)
	pollService := poll.NewService(pollRepository, voterRegistry)
	pollHandler := poll.NewHandler(pollService)

	pageRepository := page.NewRepository(pool)
	pageService := page.NewService(pageRepository)
	pageHandler := page.NewHandler(pageService)

	settingRepository := setting.NewRepository(pool)
	settingService := setting.NewService(settingRepository)
	settingHandler := setting.NewHandler(settingService)

	messageRepository := message.NewRepository(pool)
	messageService := message.NewService(messageRepository)
	messageHandler := message.NewHandler(messageService)

	newsletterRepository := newsletter.NewRepository(pool)
	newsletterService := newsletter.NewService(newsletterRepository)
	newsletterHandler := newsletter.NewHandler(newsletterService)

	adminService := admin.NewService(userRepository, map[string]admin.Counter{
		"articles":    articleService,
		"comments":    commentService,
		"messages":    messageService,
		"subscribers": newsletterService,
	}, log)
	adminHandler := admin.NewHandler(adminService)

	// ── 9. Background Jobs ────────────────────────────────────────────────
	// Buffered article views drain into PostgreSQL on a fixed cadence.
	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	go func() {
		ticker := time.NewTicker(constants.ViewFlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-ticker.C:
				if err := articleService.FlushViews(jobCtx); err != nil {
					log.Warn("view_flush_failed", slog.Any("error", err))
				}
			}
		}
	}()

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Admin:      adminHandler,
		Category:   categoryHandler,
		Article:    articleHandler,
		Comment:    commentHandler,
		Poll:       pollHandler,
		Page:       pageHandler,
		Setting:    settingHandler,
		Message:    messageHandler,
		Newsletter: newsletterHandler,
	}

	server := api.NewServer(jobCtx, cfg, log, tokenService, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
