// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Riwayati HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the relational store (PostgreSQL pool or SQLite file).
//  4. Run database migrations (idempotent).
//  5. Connect to Redis when configured.
//  6. Build the text-generation provider.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/riwayati/internal/api"
	"github.com/taibuivan/riwayati/internal/core/draft"
	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/platform/config"
	"github.com/taibuivan/riwayati/internal/platform/constants"
	"github.com/taibuivan/riwayati/internal/platform/llm"
	"github.com/taibuivan/riwayati/internal/platform/migration"
	pgstore "github.com/taibuivan/riwayati/internal/platform/postgres"
	redisstore "github.com/taibuivan/riwayati/internal/platform/redis"
	litestore "github.com/taibuivan/riwayati/internal/platform/sqlite"
)

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database_driver", cfg.DatabaseDriver),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	// Root context lives as long as the process; background workers stop on cancel.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup gets a deadline so misconfiguration is caught quickly rather
	// than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3 & 4. Relational store + migrations ─────────────────────────────
	var (
		repository    novel.Repository
		checkDatabase func(ctx context.Context) error
	)

	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := litestore.Open(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "open sqlite")
		defer func() {
			log.Info("closing_sqlite_database")
			_ = db.Close()
		}()

		must(log, migration.RunSQLite(db, cfg.MigrationPath, log), "run migrations")

		repository = novel.NewSQLiteRepository(db)
		checkDatabase = func(ctx context.Context) error { return litestore.Ping(ctx, db) }

	default:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repository = novel.NewPostgresRepository(pool)
		checkDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
	}

	// ── 5. Redis (optional) ───────────────────────────────────────────────
	var (
		locker     draft.Locker = draft.NewMemoryLocker()
		checkCache func(ctx context.Context) error
	)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		locker = draft.NewRedisLocker(rdb, log)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		log.Warn("redis_not_configured", slog.String("draft_lock", "in_process"))
	}

	// ── 6. Text generation ────────────────────────────────────────────────
	provider, err := llm.New(llm.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	must(log, err, "initialize llm provider")

	if cfg.LLM.APIKey == "" {
		log.Warn("llm_api_key_missing", slog.String("provider", provider.Name()))
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		DatabaseName:  cfg.DatabaseDriver,
		CheckDatabase: checkDatabase,
		CheckCache:    checkCache,
	}, log)

	novelService := novel.NewService(repository, log)
	draftService := draft.NewService(novelService, provider, locker, draft.Options{
		LockTTL:  cfg.DraftLockTTL,
		Provider: provider.Name(),
		Model:    provider.Model(),
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Novel:     novel.NewHandler(novelService),
		Draft:     draft.NewHandler(draftService),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
