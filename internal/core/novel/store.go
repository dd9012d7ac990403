// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import "context"

// # Novel Data Access

// NovelRepository defines the data access contract for novels.
type NovelRepository interface {

	/*
		CreateNovel persists a new novel and fills in its ID and CreatedAt.

		Parameters:
		  - context: context.Context
		  - novel: *Novel

		Returns:
		  - error: Storage failure
	*/
	CreateNovel(context context.Context, novel *Novel) error

	/*
		ListNovels returns every novel, most recently created first.
		Ties on created_at are broken by the higher ID first.

		Returns:
		  - []*Novel: Novels without chapters
		  - error: Storage failure
	*/
	ListNovels(context context.Context) ([]*Novel, error)

	/*
		GetNovel returns a single novel without its chapters.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Novel: The stored novel
		  - error: dberr.ErrNotFound if missing
	*/
	GetNovel(context context.Context, id int64) (*Novel, error)

	/*
		DeleteNovel removes a novel and, through the foreign key cascade, its
		chapters. A missing ID is not an error.

		Returns:
		  - int64: Rows removed from novels (0 or 1)
		  - error: Storage failure
	*/
	DeleteNovel(context context.Context, id int64) (int64, error)
}

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {

	/*
		ListChapters returns the chapters of a novel ordered by order_index,
		then by ID.

		Parameters:
		  - context: context.Context
		  - novelID: int64

		Returns:
		  - []*Chapter: Possibly empty
		  - error: Storage failure
	*/
	ListChapters(context context.Context, novelID int64) ([]*Chapter, error)

	/*
		GetChapter returns a single chapter.

		Returns:
		  - *Chapter: The stored chapter
		  - error: dberr.ErrNotFound if missing
	*/
	GetChapter(context context.Context, id int64) (*Chapter, error)

	/*
		CreateChapter persists a new chapter and fills in its ID and CreatedAt.

		Returns:
		  - error: dberr.ErrForeignKey (via errors.Is) when the novel does not exist
	*/
	CreateChapter(context context.Context, chapter *Chapter) error

	/*
		NextOrderIndex returns one past the highest order_index of a novel,
		or 1 when it has no chapters.
	*/
	NextOrderIndex(context context.Context, novelID int64) (int, error)

	/*
		UpdateChapter overwrites the title and content of a chapter.

		Returns:
		  - error: dberr.ErrNotFound if no row matched
	*/
	UpdateChapter(context context.Context, id int64, title, content string) error

	/*
		DeleteChapter removes a chapter. A missing ID is not an error.

		Returns:
		  - int64: Rows removed (0 or 1)
		  - error: Storage failure
	*/
	DeleteChapter(context context.Context, id int64) (int64, error)
}

// Repository is the full storage contract the [Service] depends on.
type Repository interface {
	NovelRepository
	ChapterRepository
}
