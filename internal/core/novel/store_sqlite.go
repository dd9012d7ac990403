// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taibuivan/riwayati/internal/platform/database/schema"
	"github.com/taibuivan/riwayati/internal/platform/dberr"
)

// timeLayout is fixed width so text ordering in SQLite matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements [Repository] on a modernc.org/sqlite handle.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository wires the repository to an open database.
// Foreign keys must be enabled on the handle for the chapter cascade.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Parse(time.RFC3339Nano, raw)
	}
	return t, nil
}

func scanNovel(row rowScanner) (*Novel, error) {
	var (
		n                   Novel
		author, description sql.NullString
		createdAt           string
	)
	if err := row.Scan(&n.ID, &n.Title, &author, &description, &createdAt); err != nil {
		return nil, err
	}

	if author.Valid {
		n.Author = &author.String
	}
	if description.Valid {
		n.Description = &description.String
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	n.CreatedAt = parsed
	return &n, nil
}

func scanChapter(row rowScanner) (*Chapter, error) {
	var (
		c         Chapter
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.NovelID, &c.Title, &c.Content, &c.OrderIndex, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = parsed
	return &c, nil
}

// # Novels

func (repository *SQLiteRepository) CreateNovel(ctx context.Context, novel *Novel) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES (?, ?, ?, ?)`,
		schema.Novels.Table, schema.Novels.Title, schema.Novels.Author,
		schema.Novels.Description, schema.Novels.CreatedAt,
	)

	createdAt := repository.now().UTC()
	result, err := repository.db.ExecContext(ctx, query, novel.Title, novel.Author, novel.Description, formatTime(createdAt))
	if err != nil {
		return dberr.Wrap(err, "create_novel")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return dberr.Wrap(err, "create_novel_id")
	}

	novel.ID = id
	novel.CreatedAt = createdAt
	return nil
}

func (repository *SQLiteRepository) ListNovels(ctx context.Context) ([]*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		novelColumns, schema.Novels.Table, schema.Novels.CreatedAt, schema.Novels.ID,
	)

	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_novels")
	}
	defer rows.Close()

	novels := []*Novel{}
	for rows.Next() {
		n, err := scanNovel(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_novel")
		}
		novels = append(novels, n)
	}

	return novels, dberr.Wrap(rows.Err(), "list_novels")
}

func (repository *SQLiteRepository) GetNovel(ctx context.Context, id int64) (*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		novelColumns, schema.Novels.Table, schema.Novels.ID,
	)

	n, err := scanNovel(repository.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_novel")
	}
	return n, nil
}

func (repository *SQLiteRepository) DeleteNovel(ctx context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.Novels.Table, schema.Novels.ID)

	result, err := repository.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_novel")
	}

	changes, err := result.RowsAffected()
	return changes, dberr.Wrap(err, "delete_novel")
}

// # Chapters

func (repository *SQLiteRepository) ListChapters(ctx context.Context, novelID int64) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s ASC, %s ASC`,
		chapterColumns, schema.Chapters.Table, schema.Chapters.NovelID,
		schema.Chapters.OrderIndex, schema.Chapters.ID,
	)

	rows, err := repository.db.QueryContext(ctx, query, novelID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, dberr.Wrap(rows.Err(), "list_chapters")
}

func (repository *SQLiteRepository) GetChapter(ctx context.Context, id int64) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		chapterColumns, schema.Chapters.Table, schema.Chapters.ID,
	)

	c, err := scanChapter(repository.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_chapter")
	}
	return c, nil
}

func (repository *SQLiteRepository) CreateChapter(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?)`,
		schema.Chapters.Table, schema.Chapters.NovelID, schema.Chapters.Title,
		schema.Chapters.Content, schema.Chapters.OrderIndex, schema.Chapters.CreatedAt,
	)

	createdAt := repository.now().UTC()
	result, err := repository.db.ExecContext(ctx, query,
		chapter.NovelID, chapter.Title, chapter.Content, chapter.OrderIndex, formatTime(createdAt),
	)
	if err != nil {
		return dberr.Wrap(err, "create_chapter")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return dberr.Wrap(err, "create_chapter_id")
	}

	chapter.ID = id
	chapter.CreatedAt = createdAt
	return nil
}

func (repository *SQLiteRepository) NextOrderIndex(ctx context.Context, novelID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = ?`,
		schema.Chapters.OrderIndex, schema.Chapters.Table, schema.Chapters.NovelID,
	)

	var next int
	if err := repository.db.QueryRowContext(ctx, query, novelID).Scan(&next); err != nil {
		return 0, dberr.Wrap(err, "next_order_index")
	}
	return next, nil
}

func (repository *SQLiteRepository) UpdateChapter(ctx context.Context, id int64, title, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ? WHERE %s = ?`,
		schema.Chapters.Table, schema.Chapters.Title, schema.Chapters.Content, schema.Chapters.ID,
	)

	result, err := repository.db.ExecContext(ctx, query, title, content, id)
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}

	changes, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}
	if changes == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *SQLiteRepository) DeleteChapter(ctx context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.Chapters.Table, schema.Chapters.ID)

	result, err := repository.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_chapter")
	}

	changes, err := result.RowsAffected()
	return changes, dberr.Wrap(err, "delete_chapter")
}
