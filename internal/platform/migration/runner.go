// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It enforces schema
// idempotency during application startup, ensuring the database is always
// in the correct state before traffic is served.
//
// The SQL for both dialects ships inside the binary (sql/postgres and
// sql/sqlite). A directory on disk can still be supplied to override it.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var embedded embed.FS

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// RunUp applies all pending UP migrations to a PostgreSQL database.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - migrationsPath: Directory with .sql files; empty uses the embedded set.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	// golang-migrate pgx/v5 driver expects "pgx5://" scheme.
	databaseURL := convertToPgx5DSN(dsn)

	var (
		migrator *migrate.Migrate
		err      error
	)
	if migrationsPath != "" {
		migrator, err = migrate.New("file://"+migrationsPath, databaseURL)
	} else {
		source, sourceErr := iofs.New(embedded, "sql/"+dialectPostgres)
		if sourceErr != nil {
			return fmt.Errorf("migration: failed to open embedded source: %w", sourceErr)
		}
		migrator, err = migrate.NewWithSourceInstance("iofs", source, databaseURL)
	}
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	return apply(migrator, dialectPostgres, logger)
}

// RunSQLite applies all pending UP migrations to an open SQLite handle.
//
// The migrator is not closed: that would close db, which the caller keeps
// using for the lifetime of the process.
func RunSQLite(db *sql.DB, migrationsPath string, logger *slog.Logger) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration: failed to wrap sqlite handle: %w", err)
	}

	var migrator *migrate.Migrate
	if migrationsPath != "" {
		migrator, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, dialectSQLite, driver)
	} else {
		migrator, err = newEmbeddedInstance(dialectSQLite, driver)
	}
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}

	return apply(migrator, dialectSQLite, logger)
}

func newEmbeddedInstance(dialect string, driver database.Driver) (*migrate.Migrate, error) {
	source, err := iofs.New(embedded, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("opening embedded source: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, dialect, driver)
}

func apply(migrator *migrate.Migrate, dialect string, logger *slog.Logger) error {
	// Enable verbose logging via the slog bridge.
	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started",
		slog.String("dialect", dialect),
		slog.Int("current_version", int(currentVersion)),
	)

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date", slog.String("dialect", dialect))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.String("dialect", dialect),
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// convertToPgx5DSN ensures the DSN uses the pgx5:// scheme required by golang-migrate/v4.
func convertToPgx5DSN(dsn string) string {
	const pgx5Prefix = "pgx5://"

	if strings.HasPrefix(dsn, pgx5Prefix) {
		return dsn
	}
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return pgx5Prefix + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
