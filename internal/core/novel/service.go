// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/riwayati/internal/platform/apperr"
	"github.com/taibuivan/riwayati/internal/platform/dberr"
	"github.com/taibuivan/riwayati/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for novels and chapters.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// notFound rewrites the generic store sentinel into a resource-specific 404.
func notFound(err error, resource string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}

// optional turns a blank optional field into an absent one.
func optional(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}

// # Novel Operations

// ListNovels returns the library, newest first, without chapters.
func (service *Service) ListNovels(context context.Context) ([]*Novel, error) {
	return service.repo.ListNovels(context)
}

/*
CreateNovel validates and stores a new novel.

Parameters:
  - context: context.Context
  - input: CreateNovelInput

Returns:
  - *Novel: The stored novel with ID and CreatedAt set
  - error: VALIDATION_ERROR when the title is blank, or storage errors
*/
func (service *Service) CreateNovel(context context.Context, input CreateNovelInput) (*Novel, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		OptionalMaxLen(FieldAuthor, input.Author, MaxAuthorLength).
		OptionalMaxLen(FieldDescription, input.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	novel := &Novel{
		Title:       input.Title,
		Author:      optional(input.Author),
		Description: optional(input.Description),
	}

	if err := service.repo.CreateNovel(context, novel); err != nil {
		return nil, err
	}

	service.logger.Info("novel_created", slog.Int64("novel_id", novel.ID))
	return novel, nil
}

/*
GetNovel returns a novel with all its chapters.

Returns:
  - *Detail: Chapters sorted by order_index, never nil
  - error: NOT_FOUND if the novel does not exist
*/
func (service *Service) GetNovel(context context.Context, id int64) (*Detail, error) {
	novel, err := service.repo.GetNovel(context, id)
	if err != nil {
		return nil, notFound(err, "Novel")
	}

	chapters, err := service.repo.ListChapters(context, id)
	if err != nil {
		return nil, err
	}
	if chapters == nil {
		chapters = []*Chapter{}
	}

	return &Detail{Novel: *novel, Chapters: chapters}, nil
}

// DeleteNovel removes a novel and its chapters. Deleting a missing novel
// succeeds with zero changes.
func (service *Service) DeleteNovel(context context.Context, id int64) (int64, error) {
	changes, err := service.repo.DeleteNovel(context, id)
	if err != nil {
		return 0, err
	}

	service.logger.Info("novel_deleted", slog.Int64("novel_id", id), slog.Int64("changes", changes))
	return changes, nil
}

// # Chapter Operations

// GetChapter returns a single chapter or NOT_FOUND.
func (service *Service) GetChapter(context context.Context, id int64) (*Chapter, error) {
	chapter, err := service.repo.GetChapter(context, id)
	if err != nil {
		return nil, notFound(err, "Chapter")
	}
	return chapter, nil
}

/*
CreateChapter appends a chapter to a novel.

Description: When the input carries no order_index the chapter is placed
after the current highest one. Duplicate indexes are accepted.

Returns:
  - *Chapter: The stored chapter
  - error: VALIDATION_ERROR, NOT_FOUND when the novel does not exist, or storage errors
*/
func (service *Service) CreateChapter(context context.Context, novelID int64, input CreateChapterInput) (*Chapter, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		NovelID: novelID,
		Title:   input.Title,
		Content: input.Content,
	}

	if input.OrderIndex != nil {
		chapter.OrderIndex = *input.OrderIndex
	} else {
		next, err := service.repo.NextOrderIndex(context, novelID)
		if err != nil {
			return nil, err
		}
		chapter.OrderIndex = next
	}

	if err := service.repo.CreateChapter(context, chapter); err != nil {
		if errors.Is(err, dberr.ErrForeignKey) {
			return nil, apperr.NotFound("Novel")
		}
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.Int64("chapter_id", chapter.ID),
		slog.Int64("novel_id", novelID),
		slog.Int("order_index", chapter.OrderIndex),
	)

	return chapter, nil
}

// UpdateChapter overwrites title and content. Last write wins.
func (service *Service) UpdateChapter(context context.Context, id int64, input UpdateChapterInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateChapter(context, id, input.Title, input.Content); err != nil {
		return notFound(err, "Chapter")
	}

	service.logger.Info("chapter_updated", slog.Int64("chapter_id", id))
	return nil
}

// DeleteChapter removes a chapter. Deleting a missing chapter succeeds with
// zero changes.
func (service *Service) DeleteChapter(context context.Context, id int64) (int64, error) {
	changes, err := service.repo.DeleteChapter(context, id)
	if err != nil {
		return 0, err
	}

	service.logger.Info("chapter_deleted", slog.Int64("chapter_id", id), slog.Int64("changes", changes))
	return changes, nil
}
