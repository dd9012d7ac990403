// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package workspace holds the editing session of one author.

A [Workspace] remembers the library list, the selected novel with its
chapters, the selected chapter, and two editing buffers (title and content).
The buffers are decoupled from the selected chapter: edits stay local until
[Workspace.SaveChapter] writes them back, and a draft generation replaces the
content buffer without saving it.

Every mutation goes through the API and then re-reads the authoritative
state; the workspace never invents records of its own. It is meant for a
single user and is not safe for concurrent use, except that
[Workspace.Generate] rejects a second call while one is running.
*/
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/taibuivan/riwayati/internal/core/draft"
	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/export"
	"github.com/taibuivan/riwayati/internal/platform/constants"
	"github.com/taibuivan/riwayati/internal/platform/validate"
)

// Confirmation prompts shown before destructive operations.
const (
	ConfirmDeleteNovel   = "هل أنت متأكد من حذف هذه الرواية بالكامل؟"
	ConfirmDeleteChapter = "هل أنت متأكد من حذف هذا الفصل؟"
)

// DefaultChapterTitle names a new chapter; %d is its 1-based ordinal.
const DefaultChapterTitle = "الفصل %d"

var (
	// ErrDraftTooShort is returned by Generate when the content buffer has
	// fewer than three words. No request is sent.
	ErrDraftTooShort = errors.New("workspace: " + draft.TooShortMessage)

	// ErrBusy is returned by Generate while another generation is running.
	ErrBusy = errors.New("workspace: a draft is already being generated")

	// ErrNoNovel is returned by operations that need a selected novel.
	ErrNoNovel = errors.New("workspace: no novel selected")

	// ErrNoChapter is returned by operations that need a selected chapter.
	ErrNoChapter = errors.New("workspace: no chapter selected")

	// ErrUnknownChapter is returned when a chapter is not part of the selected novel.
	ErrUnknownChapter = errors.New("workspace: chapter is not in the selected novel")
)

// API is the subset of the REST client the workspace drives.
// It is satisfied by *client.Client.
type API interface {
	ListNovels(ctx context.Context) ([]novel.Novel, error)
	GetNovel(ctx context.Context, id int64) (*novel.Detail, error)
	CreateNovel(ctx context.Context, input novel.CreateNovelInput) (int64, error)
	DeleteNovel(ctx context.Context, id int64) (int64, error)
	CreateChapter(ctx context.Context, novelID int64, input novel.CreateChapterInput) (int64, error)
	UpdateChapter(ctx context.Context, id int64, input novel.UpdateChapterInput) error
	DeleteChapter(ctx context.Context, id int64) (int64, error)
	Draft(ctx context.Context, chapterID int64, input draft.Request) (string, error)
}

// Confirmer asks the author to approve a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to [Confirmer].
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Workspace is the client-side view state.
type Workspace struct {
	api     API
	confirm Confirmer
	logger  *slog.Logger

	novels  []novel.Novel
	novel   *novel.Detail
	chapter *novel.Chapter

	title   string
	content string

	generating atomic.Bool
}

// New creates an empty workspace. Call [Workspace.Refresh] to load the library.
func New(api API, confirm Confirmer, logger *slog.Logger) *Workspace {
	return &Workspace{
		api:     api,
		confirm: confirm,
		logger:  logger,
		novels:  []novel.Novel{},
	}
}

// # State

// Novels returns the library as last fetched.
func (w *Workspace) Novels() []novel.Novel { return w.novels }

// Novel returns the selected novel with its chapters, or nil.
func (w *Workspace) Novel() *novel.Detail { return w.novel }

// Chapter returns the selected chapter as last fetched, or nil.
func (w *Workspace) Chapter() *novel.Chapter { return w.chapter }

// Title returns the title buffer.
func (w *Workspace) Title() string { return w.title }

// Content returns the content buffer.
func (w *Workspace) Content() string { return w.content }

// SetTitle edits the title buffer.
func (w *Workspace) SetTitle(title string) { w.title = title }

// SetContent edits the content buffer.
func (w *Workspace) SetContent(content string) { w.content = content }

// Generating reports whether a draft generation is in flight.
func (w *Workspace) Generating() bool { return w.generating.Load() }

// # Library

/*
Refresh reloads the novel list.

A failure is logged and leaves the previous list in place; the error is also
returned so a front end may surface it.
*/
func (w *Workspace) Refresh(ctx context.Context) error {
	novels, err := w.api.ListNovels(ctx)
	if err != nil {
		w.logger.Error("novel_list_fetch_failed", slog.Any("error", err))
		return err
	}
	w.novels = novels
	return nil
}

// SelectNovel loads a novel and selects its first chapter, if any.
func (w *Workspace) SelectNovel(ctx context.Context, id int64) error {
	detail, err := w.api.GetNovel(ctx, id)
	if err != nil {
		return err
	}

	w.novel = detail
	if len(detail.Chapters) > 0 {
		w.load(detail.Chapters[0])
	} else {
		w.clearChapter()
	}
	return nil
}

// CreateNovel stores a novel, refreshes the list and selects it.
func (w *Workspace) CreateNovel(ctx context.Context, input novel.CreateNovelInput) (int64, error) {
	id, err := w.api.CreateNovel(ctx, input)
	if err != nil {
		return 0, err
	}

	_ = w.Refresh(ctx)

	if err := w.SelectNovel(ctx, id); err != nil {
		return id, err
	}
	return id, nil
}

/*
DeleteNovel removes a novel after confirmation.

Returns:
  - bool: false when the author declined (no request is made)
  - error: API failure; the workspace is left unchanged
*/
func (w *Workspace) DeleteNovel(ctx context.Context, id int64) (bool, error) {
	if !w.confirm.Confirm(ConfirmDeleteNovel) {
		return false, nil
	}

	if _, err := w.api.DeleteNovel(ctx, id); err != nil {
		return false, err
	}

	if w.novel != nil && w.novel.ID == id {
		w.novel = nil
		w.clearChapter()
	}

	_ = w.Refresh(ctx)
	return true, nil
}

// # Chapters

/*
CreateChapter appends a chapter named after its ordinal to the selected novel.

Description: The ordinal is the current chapter count plus one and is also
sent as order_index. After the write the novel is re-read and the stored
chapter with the returned id becomes the selection.
*/
func (w *Workspace) CreateChapter(ctx context.Context) (*novel.Chapter, error) {
	if w.novel == nil {
		return nil, ErrNoNovel
	}

	// 1. Write
	ordinal := len(w.novel.Chapters) + 1
	id, err := w.api.CreateChapter(ctx, w.novel.ID, novel.CreateChapterInput{
		Title:      fmt.Sprintf(DefaultChapterTitle, ordinal),
		OrderIndex: &ordinal,
	})
	if err != nil {
		return nil, err
	}

	// 2. Re-read
	detail, err := w.api.GetNovel(ctx, w.novel.ID)
	if err != nil {
		return nil, err
	}
	w.novel = detail

	// 3. Select the authoritative record
	chapter := findChapter(detail, id)
	if chapter == nil {
		return nil, fmt.Errorf("workspace: chapter %d missing after create: %w", id, ErrUnknownChapter)
	}
	w.load(chapter)
	return chapter, nil
}

// SelectChapter loads a chapter of the selected novel into the buffers.
func (w *Workspace) SelectChapter(id int64) error {
	if w.novel == nil {
		return ErrNoNovel
	}

	chapter := findChapter(w.novel, id)
	if chapter == nil {
		return ErrUnknownChapter
	}
	w.load(chapter)
	return nil
}

/*
SaveChapter writes both buffers to the selected chapter.

Description: The novel is re-read afterwards so the chapter list reflects the
new title. The buffers are not touched.
*/
func (w *Workspace) SaveChapter(ctx context.Context) error {
	if w.chapter == nil {
		return ErrNoChapter
	}

	err := w.api.UpdateChapter(ctx, w.chapter.ID, novel.UpdateChapterInput{
		Title:   w.title,
		Content: w.content,
	})
	if err != nil {
		return err
	}

	detail, err := w.api.GetNovel(ctx, w.chapter.NovelID)
	if err != nil {
		w.logger.Warn("novel_refresh_failed",
			slog.Int64("novel_id", w.chapter.NovelID),
			slog.Any("error", err),
		)
		return nil
	}

	w.novel = detail
	if chapter := findChapter(detail, w.chapter.ID); chapter != nil {
		w.chapter = chapter
	}
	return nil
}

/*
DeleteChapter removes a chapter after confirmation.

Description: If the deleted chapter was selected, the first remaining chapter
is selected instead (or none). Another selected chapter keeps its buffers.

Returns:
  - bool: false when the author declined (no request is made)
  - error: API failure; the workspace is left unchanged
*/
func (w *Workspace) DeleteChapter(ctx context.Context, id int64) (bool, error) {
	if !w.confirm.Confirm(ConfirmDeleteChapter) {
		return false, nil
	}

	if _, err := w.api.DeleteChapter(ctx, id); err != nil {
		return false, err
	}

	wasSelected := w.chapter != nil && w.chapter.ID == id
	if wasSelected {
		w.clearChapter()
	}

	if w.novel == nil {
		return true, nil
	}

	detail, err := w.api.GetNovel(ctx, w.novel.ID)
	if err != nil {
		w.logger.Warn("novel_refresh_failed",
			slog.Int64("novel_id", w.novel.ID),
			slog.Any("error", err),
		)
		return true, nil
	}

	w.novel = detail
	if wasSelected && len(detail.Chapters) > 0 {
		w.load(detail.Chapters[0])
	}
	return true, nil
}

// # Drafting

/*
Generate asks the server to expand the content buffer into a full chapter.

Description: The buffer must hold at least three words; otherwise
ErrDraftTooShort is returned without a request. On success the content buffer
is replaced (not saved). On failure the buffers are unchanged.
*/
func (w *Workspace) Generate(ctx context.Context) error {
	if w.chapter == nil {
		return ErrNoChapter
	}
	if validate.WordCount(w.content) < constants.DraftMinWords {
		return ErrDraftTooShort
	}
	if !w.generating.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer w.generating.Store(false)

	content, err := w.api.Draft(ctx, w.chapter.ID, draft.Request{
		Title:   w.title,
		Content: w.content,
	})
	if err != nil {
		w.logger.Warn("draft_failed",
			slog.Int64("chapter_id", w.chapter.ID),
			slog.Any("error", err),
		)
		return err
	}

	w.content = content
	return nil
}

// # Export

// Export renders the selected novel as it was last fetched.
// Unsaved buffer edits are not included.
func (w *Workspace) Export(format export.Format) (*export.File, error) {
	if w.novel == nil {
		return nil, ErrNoNovel
	}
	return export.Render(w.novel, format)
}

// load selects chapter and copies it into the buffers.
func (w *Workspace) load(chapter *novel.Chapter) {
	w.chapter = chapter
	w.title = chapter.Title
	w.content = chapter.Content
}

func (w *Workspace) clearChapter() {
	w.chapter = nil
	w.title = ""
	w.content = ""
}

func findChapter(detail *novel.Detail, id int64) *novel.Chapter {
	for _, chapter := range detail.Chapters {
		if chapter.ID == id {
			return chapter
		}
	}
	return nil
}
