// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/platform/apperr"
	"github.com/taibuivan/riwayati/pkg/pointer"
)

// fakeLibrary serves a single novel with a single chapter (id 7).
type fakeLibrary struct{}

func (fakeLibrary) GetChapter(_ context.Context, id int64) (*novel.Chapter, error) {
	if id != 7 {
		return nil, apperr.NotFound("Chapter")
	}
	return &novel.Chapter{ID: 7, NovelID: 1, Title: "الفصل 1", OrderIndex: 1}, nil
}

func (fakeLibrary) GetNovel(_ context.Context, id int64) (*novel.Detail, error) {
	if id != 1 {
		return nil, apperr.NotFound("Novel")
	}
	return &novel.Detail{
		Novel:    novel.Novel{ID: 1, Title: "رحلة", Description: pointer.To("قصة سفر")},
		Chapters: []*novel.Chapter{},
	}, nil
}

// fakeGenerator records prompts and answers with a fixed reply.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
	block   chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.reply, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func newTestService(generator Generator, locker Locker) *Service {
	return NewService(fakeLibrary{}, generator, locker, Options{Provider: "fake", LockTTL: time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_Generate_Gate verifies drafts under three words never reach the provider.
*/
func TestService_Generate_Gate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t "},
		{"two_words", "كان  يا"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &fakeGenerator{reply: "x"}
			service := newTestService(generator, NewMemoryLocker())

			_, err := service.Generate(context.Background(), 7, Request{Content: tt.content})

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeUnprocessable, appErr.Code)
			assert.Zero(t, generator.calls())
		})
	}
}

/*
TestService_Generate_Success verifies the prompt context and the returned text.
*/
func TestService_Generate_Success(t *testing.T) {
	generator := &fakeGenerator{reply: "فصل كامل"}
	service := newTestService(generator, NewMemoryLocker())

	content, err := service.Generate(context.Background(), 7, Request{Title: "البداية", Content: "كان يا ما كان"})
	require.NoError(t, err)
	assert.Equal(t, "فصل كامل", content)

	require.Equal(t, 1, generator.calls())
	prompt := generator.prompts[0]
	assert.Contains(t, prompt, "رحلة")
	assert.Contains(t, prompt, "قصة سفر")
	assert.Contains(t, prompt, "البداية")
	assert.Contains(t, prompt, "كان يا ما كان")
}

/*
TestService_Generate_TitleFallback uses the stored title when the buffer title is blank.
*/
func TestService_Generate_TitleFallback(t *testing.T) {
	generator := &fakeGenerator{reply: "ok"}
	service := newTestService(generator, NewMemoryLocker())

	_, err := service.Generate(context.Background(), 7, Request{Content: "one two three"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(generator.prompts[0], "الفصل 1"))
}

/*
TestService_Generate_Failures covers missing chapters and provider errors.
*/
func TestService_Generate_Failures(t *testing.T) {
	t.Run("missing_chapter", func(t *testing.T) {
		service := newTestService(&fakeGenerator{}, NewMemoryLocker())
		_, err := service.Generate(context.Background(), 99, Request{Content: "one two three"})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("provider_error", func(t *testing.T) {
		upstream := errors.New("quota exceeded")
		service := newTestService(&fakeGenerator{err: upstream}, NewMemoryLocker())

		_, err := service.Generate(context.Background(), 7, Request{Content: "one two three"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeUpstream, appErr.Code)
		assert.ErrorIs(t, err, upstream)
	})
}

/*
TestService_Generate_Concurrent verifies a second generation for the same
chapter is refused while the first is running, and allowed afterwards.
*/
func TestService_Generate_Concurrent(t *testing.T) {
	generator := &fakeGenerator{reply: "done", block: make(chan struct{})}
	service := newTestService(generator, NewMemoryLocker())

	// 1. Start the first generation and wait until it reaches the provider
	done := make(chan error, 1)
	go func() {
		_, err := service.Generate(context.Background(), 7, Request{Content: "one two three"})
		done <- err
	}()
	require.Eventually(t, func() bool { return generator.calls() == 1 }, time.Second, 5*time.Millisecond)

	// 2. The second one conflicts
	_, err := service.Generate(context.Background(), 7, Request{Content: "one two three"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)

	// 3. Finish the first, then the lock is free again
	close(generator.block)
	require.NoError(t, <-done)

	_, err = service.Generate(context.Background(), 7, Request{Content: "one two three"})
	assert.NoError(t, err)
}
