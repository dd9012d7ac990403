// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ChaptersTable represents the 'chapters' table.
type ChaptersTable struct {
	Table      string
	ID         string
	NovelID    string
	Title      string
	Content    string
	OrderIndex string
	CreatedAt  string
}

// Chapters is the schema definition for chapters.
var Chapters = ChaptersTable{
	Table:      "chapters",
	ID:         "id",
	NovelID:    "novel_id",
	Title:      "title",
	Content:    "content",
	OrderIndex: "order_index",
	CreatedAt:  "created_at",
}

func (t ChaptersTable) Columns() []string {
	return []string{t.ID, t.NovelID, t.Title, t.Content, t.OrderIndex, t.CreatedAt}
}
