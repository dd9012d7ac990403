// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by the SQL repositories so
// query strings are assembled from one definition per table.
package schema

// NovelsTable represents the 'novels' table.
type NovelsTable struct {
	Table       string
	ID          string
	Title       string
	Author      string
	Description string
	CreatedAt   string
}

// Novels is the schema definition for novels.
var Novels = NovelsTable{
	Table:       "novels",
	ID:          "id",
	Title:       "title",
	Author:      "author",
	Description: "description",
	CreatedAt:   "created_at",
}

// Columns returns the select list in scan order.
func (t NovelsTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.Description, t.CreatedAt}
}
