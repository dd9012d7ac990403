// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package apitest starts a complete API server on a temporary SQLite
// database for tests in other packages (client, workspace, CLI).
package apitest

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/api"
	"github.com/taibuivan/riwayati/internal/core/draft"
	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/platform/config"
	"github.com/taibuivan/riwayati/internal/platform/migration"
	"github.com/taibuivan/riwayati/internal/platform/sqlite"
)

// Generator is a scripted draft generator. It answers "generated chapter"
// until [Generator.Script] says otherwise.
type Generator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

// Script sets the next replies. Safe to call while the server runs.
func (g *Generator) Script(reply string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reply, g.err = reply, err
}

// Generate implements draft.Generator.
func (g *Generator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

// Prompts returns every prompt received so far.
func (g *Generator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// Calls reports how many prompts reached the generator.
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// Server is a running test API.
type Server struct {
	*httptest.Server

	DB        *sql.DB
	Generator *Generator
}

// Start launches the server and registers cleanup on t.
func Start(t *testing.T) *Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "riwayati.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.RunSQLite(db, "", logger))

	cfg, err := config.LoadFrom(map[string]string{
		"DATABASE_DRIVER": config.DriverSQLite,
		"DATABASE_URL":    "unused",
	})
	require.NoError(t, err)

	novelService := novel.NewService(novel.NewSQLiteRepository(db), logger)
	generator := &Generator{reply: "generated chapter"}
	draftService := draft.NewService(novelService, generator, draft.NewMemoryLocker(), draft.Options{Provider: "test"}, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		DatabaseName:  config.DriverSQLite,
		CheckDatabase: func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
	}, logger)

	router := api.NewRouter(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Novel:     novel.NewHandler(novelService),
		Draft:     draft.NewHandler(draftService),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &Server{Server: server, DB: db, Generator: generator}
}
