// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/riwayati/internal/platform/constants"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired holder cannot free a lock that a newer request has taken.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements [Locker] with SET NX and a TTL.
type RedisLocker struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisLocker creates a new Redis-backed [Locker].
func NewRedisLocker(client *redis.Client, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: client, logger: logger}
}

func lockKey(chapterID int64) string {
	return constants.RedisPrefixDraftLock + strconv.FormatInt(chapterID, 10)
}

/*
Acquire stores a random token under the chapter key if the key is absent.

Parameters:
  - ctx: context.Context
  - chapterID: int64
  - ttl: time.Duration

Returns:
  - func(): Compare-and-delete release
  - error: ErrLocked or connectivity errors
*/
func (locker *RedisLocker) Acquire(ctx context.Context, chapterID int64, ttl time.Duration) (func(), error) {
	key := lockKey(chapterID)
	token := uuid.NewString()

	acquired, err := locker.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_draft_lock_set_failed: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	release := func() {
		// The request context may already be cancelled; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, locker.client, []string{key}, token).Err(); err != nil {
			locker.logger.Warn("draft_lock_release_failed",
				slog.Int64("chapter_id", chapterID),
				slog.String("error", err.Error()),
			)
		}
	}

	return release, nil
}
