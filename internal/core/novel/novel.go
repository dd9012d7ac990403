// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package novel owns the library: novels and the chapters they contain.

It provides the repository contract with PostgreSQL and SQLite
implementations, the service that enforces the business rules, and the HTTP
handlers mounted under /api.
*/
package novel

import "time"

// Novel is a top-level work. Chapters are only attached in the [Detail] view.
type Novel struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      *string   `json:"author"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is a novel together with its chapters, sorted by order_index.
// Chapters is never nil so it always serializes as an array.
type Detail struct {
	Novel
	Chapters []*Chapter `json:"chapters"`
}

// Chapter is an ordered unit of a novel's text.
//
// OrderIndex is advisory: it is neither unique nor renumbered after a
// delete, and gaps are expected.
type Chapter struct {
	ID         int64     `json:"id"`
	NovelID    int64     `json:"novel_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateNovelInput is the payload accepted by POST /api/novels.
type CreateNovelInput struct {
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
}

// CreateChapterInput is the payload accepted by POST /api/novels/{id}/chapters.
// A nil OrderIndex appends the chapter after the current last one.
type CreateChapterInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	OrderIndex *int   `json:"order_index"`
}

// UpdateChapterInput is the payload accepted by PUT /api/chapters/{id}.
// Both fields are written; there is no partial update.
type UpdateChapterInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Field names used in validation details.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldOrderIndex  = "order_index"
)

// Length limits, in characters.
const (
	MaxTitleLength       = 500
	MaxAuthorLength      = 200
	MaxDescriptionLength = 10000
)
