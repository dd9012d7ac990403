// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "github.com/taibuivan/riwayati/internal/platform/redis"
)

/*
TestRedisLocker runs against a real server when TEST_REDIS_URL is set.
*/
func TestRedisLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	client, err := platformredis.NewClient(ctx, url, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisLocker(client, logger)
	chapterID := time.Now().UnixNano()
	t.Cleanup(func() { client.Del(context.Background(), lockKey(chapterID)) })

	release, err := locker.Acquire(ctx, chapterID, 5*time.Second)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, chapterID, 5*time.Second)
	assert.ErrorIs(t, err, ErrLocked)

	release()

	release, err = locker.Acquire(ctx, chapterID, 5*time.Second)
	require.NoError(t, err)
	release()
}
