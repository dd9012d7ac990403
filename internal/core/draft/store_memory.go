// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker implements [Locker] inside one process. It is used when no
// Redis URL is configured.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[int64]memoryLease
	now   func() time.Time
	epoch uint64
}

type memoryLease struct {
	expires time.Time
	epoch   uint64
}

// NewMemoryLocker creates an empty [MemoryLocker].
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: map[int64]memoryLease{}, now: time.Now}
}

// Acquire takes the chapter lock unless a live lease exists.
func (locker *MemoryLocker) Acquire(_ context.Context, chapterID int64, ttl time.Duration) (func(), error) {
	locker.mu.Lock()
	defer locker.mu.Unlock()

	now := locker.now()
	if lease, ok := locker.held[chapterID]; ok && now.Before(lease.expires) {
		return nil, ErrLocked
	}

	locker.epoch++
	lease := memoryLease{expires: now.Add(ttl), epoch: locker.epoch}
	locker.held[chapterID] = lease

	release := func() {
		locker.mu.Lock()
		defer locker.mu.Unlock()

		if current, ok := locker.held[chapterID]; ok && current.epoch == lease.epoch {
			delete(locker.held, chapterID)
		}
	}

	return release, nil
}
