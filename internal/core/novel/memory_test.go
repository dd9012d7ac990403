// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/riwayati/internal/platform/dberr"
)

// memoryRepository is an in-process [Repository] for service and handler tests.
type memoryRepository struct {
	mu            sync.Mutex
	novels        map[int64]*Novel
	chapters      map[int64]*Chapter
	nextNovelID   int64
	nextChapterID int64
	clock         time.Time

	// failWith, when set, is returned by every call.
	failWith error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		novels:   map[int64]*Novel{},
		chapters: map[int64]*Chapter{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryRepository) CreateNovel(_ context.Context, novel *Novel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}

	m.nextNovelID++
	novel.ID = m.nextNovelID
	novel.CreatedAt = m.tick()
	stored := *novel
	m.novels[novel.ID] = &stored
	return nil
}

func (m *memoryRepository) ListNovels(context.Context) ([]*Novel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	novels := []*Novel{}
	for _, n := range m.novels {
		copied := *n
		novels = append(novels, &copied)
	}
	sort.Slice(novels, func(i, j int) bool {
		if !novels[i].CreatedAt.Equal(novels[j].CreatedAt) {
			return novels[i].CreatedAt.After(novels[j].CreatedAt)
		}
		return novels[i].ID > novels[j].ID
	})
	return novels, nil
}

func (m *memoryRepository) GetNovel(_ context.Context, id int64) (*Novel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	n, ok := m.novels[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (m *memoryRepository) DeleteNovel(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}

	if _, ok := m.novels[id]; !ok {
		return 0, nil
	}
	delete(m.novels, id)
	for chapterID, c := range m.chapters {
		if c.NovelID == id {
			delete(m.chapters, chapterID)
		}
	}
	return 1, nil
}

func (m *memoryRepository) ListChapters(_ context.Context, novelID int64) ([]*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	chapters := []*Chapter{}
	for _, c := range m.chapters {
		if c.NovelID == novelID {
			copied := *c
			chapters = append(chapters, &copied)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].OrderIndex != chapters[j].OrderIndex {
			return chapters[i].OrderIndex < chapters[j].OrderIndex
		}
		return chapters[i].ID < chapters[j].ID
	})
	return chapters, nil
}

func (m *memoryRepository) GetChapter(_ context.Context, id int64) (*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	c, ok := m.chapters[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *memoryRepository) CreateChapter(_ context.Context, chapter *Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}

	if _, ok := m.novels[chapter.NovelID]; !ok {
		return errors.Join(dberr.ErrForeignKey, errors.New("chapters.novel_id"))
	}

	m.nextChapterID++
	chapter.ID = m.nextChapterID
	chapter.CreatedAt = m.tick()
	stored := *chapter
	m.chapters[chapter.ID] = &stored
	return nil
}

func (m *memoryRepository) NextOrderIndex(_ context.Context, novelID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}

	highest := 0
	for _, c := range m.chapters {
		if c.NovelID == novelID && c.OrderIndex > highest {
			highest = c.OrderIndex
		}
	}
	return highest + 1, nil
}

func (m *memoryRepository) UpdateChapter(_ context.Context, id int64, title, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}

	c, ok := m.chapters[id]
	if !ok {
		return dberr.ErrNotFound
	}
	c.Title = title
	c.Content = content
	return nil
}

func (m *memoryRepository) DeleteChapter(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}

	if _, ok := m.chapters[id]; !ok {
		return 0, nil
	}
	delete(m.chapters, id)
	return 1, nil
}
