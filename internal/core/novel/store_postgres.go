// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/riwayati/internal/platform/database/schema"
	"github.com/taibuivan/riwayati/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wires the repository to an existing pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	novelColumns   = strings.Join(schema.Novels.Columns(), ", ")
	chapterColumns = strings.Join(schema.Chapters.Columns(), ", ")
)

// # Novels

func (repository *PostgresRepository) CreateNovel(context context.Context, novel *Novel) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.Novels.Table, schema.Novels.Title, schema.Novels.Author, schema.Novels.Description,
		schema.Novels.ID, schema.Novels.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, novel.Title, novel.Author, novel.Description).
		Scan(&novel.ID, &novel.CreatedAt)
	return dberr.Wrap(err, "create_novel")
}

func (repository *PostgresRepository) ListNovels(context context.Context) ([]*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		novelColumns, schema.Novels.Table, schema.Novels.CreatedAt, schema.Novels.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_novels")
	}
	defer rows.Close()

	novels := []*Novel{}
	for rows.Next() {
		n := &Novel{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Author, &n.Description, &n.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_novel")
		}
		novels = append(novels, n)
	}

	return novels, dberr.Wrap(rows.Err(), "list_novels")
}

func (repository *PostgresRepository) GetNovel(context context.Context, id int64) (*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		novelColumns, schema.Novels.Table, schema.Novels.ID,
	)

	n := &Novel{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&n.ID, &n.Title, &n.Author, &n.Description, &n.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_novel")
	}
	return n, nil
}

func (repository *PostgresRepository) DeleteNovel(context context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Novels.Table, schema.Novels.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_novel")
	}
	return cmd.RowsAffected(), nil
}

// # Chapters

func (repository *PostgresRepository) ListChapters(context context.Context, novelID int64) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		chapterColumns, schema.Chapters.Table, schema.Chapters.NovelID,
		schema.Chapters.OrderIndex, schema.Chapters.ID,
	)

	rows, err := repository.db.Query(context, query, novelID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		c := &Chapter{}
		if err := rows.Scan(&c.ID, &c.NovelID, &c.Title, &c.Content, &c.OrderIndex, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, dberr.Wrap(rows.Err(), "list_chapters")
}

func (repository *PostgresRepository) GetChapter(context context.Context, id int64) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns, schema.Chapters.Table, schema.Chapters.ID,
	)

	c := &Chapter{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&c.ID, &c.NovelID, &c.Title, &c.Content, &c.OrderIndex, &c.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_chapter")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateChapter(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.Chapters.Table, schema.Chapters.NovelID, schema.Chapters.Title,
		schema.Chapters.Content, schema.Chapters.OrderIndex,
		schema.Chapters.ID, schema.Chapters.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, chapter.NovelID, chapter.Title, chapter.Content, chapter.OrderIndex).
		Scan(&chapter.ID, &chapter.CreatedAt)
	return dberr.Wrap(err, "create_chapter")
}

func (repository *PostgresRepository) NextOrderIndex(context context.Context, novelID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1`,
		schema.Chapters.OrderIndex, schema.Chapters.Table, schema.Chapters.NovelID,
	)

	var next int
	if err := repository.db.QueryRow(context, query, novelID).Scan(&next); err != nil {
		return 0, dberr.Wrap(err, "next_order_index")
	}
	return next, nil
}

func (repository *PostgresRepository) UpdateChapter(context context.Context, id int64, title, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Chapters.Table, schema.Chapters.Title, schema.Chapters.Content, schema.Chapters.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, title, content)
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteChapter(context context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Chapters.Table, schema.Chapters.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_chapter")
	}
	return cmd.RowsAffected(), nil
}
