// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/timesnews/api/internal/platform/constants"
)

// RedisViewCounter implements ViewCounter on a Redis hash.
//
// All buffered counts live in a single hash keyed by article ID, so Drain
// can swap the whole buffer out with one RENAME instead of scanning keys.
type RedisViewCounter struct {
	client *redis.Client
}

// NewRedisViewCounter creates a new Redis-backed ViewCounter.
func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

var _ ViewCounter = (*RedisViewCounter)(nil)

/*
Increment records one view for the article.

Parameters:
  - context: context.Context
  - articleID: string

Returns:
  - error: Execution failures
*/
func (counter *RedisViewCounter) Increment(context context.Context, articleID string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixArticleViews + "pending"

	// Increment the per-article field inside the buffer hash
	if err := counter.client.HIncrBy(context, key, articleID, 1).Err(); err != nil {
		return fmt.Errorf("redis_view_counter_increment_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Drain atomically reads and resets all buffered counters.

Description: The buffer hash is renamed to a drain key before reading, so
views arriving during the read land in a fresh buffer and are never lost
or double counted.

Parameters:
  - context: context.Context

Returns:
  - map[string]int64: ArticleID to buffered view count
  - error: Execution failures
*/
func (counter *RedisViewCounter) Drain(context context.Context) (map[string]int64, error) {

	// Use constants for key prefixes
	pendingKey := constants.RedisPrefixArticleViews + "pending"
	drainKey := constants.RedisPrefixArticleViews + "draining"

	// 1. Swap the buffer out under a drain key
	if err := counter.client.Rename(context, pendingKey, drainKey).Err(); err != nil {
		// An absent buffer means no views since the last drain
		if strings.Contains(err.Error(), "no such key") {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("redis_view_counter_drain_swap_failed: %w", err)
	}

	// 2. Read the whole drained hash
	raw, err := counter.client.HGetAll(context, drainKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_view_counter_drain_read_failed: %w", err)
	}

	// 3. Parse the counts
	counts := make(map[string]int64, len(raw))
	for articleID, value := range raw {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counts[articleID] = parsed
	}

	// 4. Discard the drained hash
	if err := counter.client.Del(context, drainKey).Err(); err != nil {
		return nil, fmt.Errorf("redis_view_counter_drain_cleanup_failed: %w", err)
	}

	// Return the drained counts
	return counts, nil
}
