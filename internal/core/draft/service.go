// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/platform/apperr"
	"github.com/taibuivan/riwayati/internal/platform/constants"
	"github.com/taibuivan/riwayati/internal/platform/metrics"
	"github.com/taibuivan/riwayati/internal/platform/validate"
)

// Library is the read access the service needs. *novel.Service satisfies it.
type Library interface {
	GetChapter(ctx context.Context, id int64) (*novel.Chapter, error)
	GetNovel(ctx context.Context, id int64) (*novel.Detail, error)
}

// Options tunes a [Service]. Zero values fall back to defaults.
type Options struct {
	// LockTTL bounds how long a crashed request can keep a chapter locked.
	LockTTL time.Duration

	// Provider and Model label metrics and logs.
	Provider string
	Model    string
}

// Service runs draft generations.
type Service struct {
	library   Library
	generator Generator
	locker    Locker
	options   Options
	logger    *slog.Logger
}

// NewService constructs a new [Service].
func NewService(library Library, generator Generator, locker Locker, options Options, logger *slog.Logger) *Service {
	if options.LockTTL <= 0 {
		options.LockTTL = constants.DefaultDraftLockTTL
	}
	return &Service{
		library:   library,
		generator: generator,
		locker:    locker,
		options:   options,
		logger:    logger,
	}
}

func (service *Service) record(outcome string) {
	metrics.DraftTotal.WithLabelValues(service.options.Provider, outcome).Inc()
}

/*
Generate produces a full chapter body from the client's draft.

Description: The chapter title falls back to the stored one when the buffer
title is blank. The generated text is returned, never saved.

Parameters:
  - ctx: context.Context
  - chapterID: int64
  - request: Request (unsaved buffers)

Returns:
  - string: Generated content
  - error: UNPROCESSABLE, NOT_FOUND, CONFLICT or UPSTREAM_ERROR
*/
func (service *Service) Generate(ctx context.Context, chapterID int64, request Request) (string, error) {

	// 1. Word gate
	if validate.WordCount(request.Content) < constants.DraftMinWords {
		service.record(metrics.OutcomeTooShort)
		return "", apperr.Unprocessable(TooShortMessage)
	}

	// 2. Prompt context
	chapter, err := service.library.GetChapter(ctx, chapterID)
	if err != nil {
		if apperr.IsNotFound(err) {
			service.record(metrics.OutcomeNotFound)
		}
		return "", err
	}

	detail, err := service.library.GetNovel(ctx, chapter.NovelID)
	if err != nil {
		if apperr.IsNotFound(err) {
			service.record(metrics.OutcomeNotFound)
		}
		return "", err
	}

	title := request.Title
	if strings.TrimSpace(title) == "" {
		title = chapter.Title
	}

	// 3. One generation per chapter
	release, err := service.locker.Acquire(ctx, chapterID, service.options.LockTTL)
	if err != nil {
		if errors.Is(err, ErrLocked) {
			service.record(metrics.OutcomeBusy)
			return "", apperr.Conflict("A draft is already being generated for this chapter")
		}
		return "", apperr.Internal(err)
	}
	defer release()

	// 4. Provider call
	started := time.Now()
	content, err := service.generator.Generate(ctx, BuildPrompt(&detail.Novel, title, request.Content))
	metrics.LLMCallDuration.WithLabelValues(service.options.Provider, service.options.Model).Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, context.Canceled) {
			service.record(metrics.OutcomeCancelled)
		} else {
			service.record(metrics.OutcomeUpstream)
		}

		service.logger.Warn("draft_generation_failed",
			slog.Int64("chapter_id", chapterID),
			slog.String("provider", service.options.Provider),
			slog.String("error", err.Error()),
		)
		return "", apperr.Upstream("فشل توليد المحتوى بالذكاء الاصطناعي. يرجى المحاولة مرة أخرى.", err)
	}

	service.record(metrics.OutcomeOK)
	metrics.DraftWordCount.Observe(float64(validate.WordCount(content)))

	service.logger.Info("draft_generated",
		slog.Int64("chapter_id", chapterID),
		slog.Int64("novel_id", chapter.NovelID),
		slog.Duration("took", time.Since(started)),
	)

	return content, nil
}
