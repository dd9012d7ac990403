// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/platform/sqlite"
)

/*
TestConvertToPgx5DSN verifies the scheme rewrite required by the pgx5 driver.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@h:5432/db", "pgx5://u:p@h:5432/db"},
		{"postgresql://h/db?sslmode=disable", "pgx5://h/db?sslmode=disable"},
		{"pgx5://h/db", "pgx5://h/db"},
		{"host=h dbname=db", "host=h dbname=db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.in), tt.in)
	}
}

/*
TestRunSQLite_Idempotent applies the embedded migrations twice and checks the
schema is usable, including the novel → chapter cascade.
*/
func TestRunSQLite_Idempotent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "riwayati.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// 1. First run creates both tables
	require.NoError(t, RunSQLite(db, "", logger))

	// 2. Second run is a no-op
	require.NoError(t, RunSQLite(db, "", logger))

	// 3. Cascade is active
	_, err = db.ExecContext(ctx, `INSERT INTO novels (id, title, created_at) VALUES (1, 'N', '2026-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO chapters (novel_id, title, order_index, created_at) VALUES (1, 'C', 1, '2026-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM novels WHERE id = 1`)
	require.NoError(t, err)

	var remaining int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters`).Scan(&remaining))
	assert.Zero(t, remaining)
}
