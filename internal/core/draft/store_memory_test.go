// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestMemoryLocker verifies exclusivity, expiry and that a stale release does not
free a newer lease.
*/
func TestMemoryLocker(t *testing.T) {
	locker := NewMemoryLocker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	locker.now = func() time.Time { return now }
	ctx := context.Background()

	// 1. Exclusive per chapter
	releaseFirst, err := locker.Acquire(ctx, 1, time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, 1, time.Minute)
	assert.ErrorIs(t, err, ErrLocked)

	releaseOther, err := locker.Acquire(ctx, 2, time.Minute)
	require.NoError(t, err)
	releaseOther()

	// 2. Expiry frees the chapter
	now = now.Add(2 * time.Minute)
	releaseSecond, err := locker.Acquire(ctx, 1, time.Minute)
	require.NoError(t, err)

	// 3. The expired holder's release leaves the new lease alone
	releaseFirst()
	_, err = locker.Acquire(ctx, 1, time.Minute)
	assert.ErrorIs(t, err, ErrLocked)

	releaseSecond()
	release, err := locker.Acquire(ctx, 1, time.Minute)
	require.NoError(t, err)
	release()
}
