// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// It understands both drivers the application can run on: pgx (PostgreSQL)
// and modernc.org/sqlite.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/taibuivan/riwayati/internal/platform/apperr"
)

// pgForeignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation.
const pgForeignKeyViolation = "23503"

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrForeignKey marks a write that referenced a parent row which does not exist.
	ErrForeignKey = errors.New("dberr: foreign key violation")
)

// Wrap inspects a database error and wraps it into a meaningful error.
// It hides internal database details from the client while classifying the error type.
//
//   - no rows              → [ErrNotFound]
//   - foreign key failures → an error matching [ErrForeignKey] via [errors.Is]
//   - anything else        → [apperr.Internal] carrying the action for logs
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Referential integrity
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w: %w", action, ErrForeignKey, err)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsForeignKeyViolation reports whether err is a referential integrity failure
// raised by either supported driver.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		// Extended result codes may be off; fall back to the primary code + message.
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "FOREIGN KEY")
	}

	return false
}
