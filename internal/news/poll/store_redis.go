// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/timesnews/api/internal/platform/constants"
)

// RedisVoterRegistry implements VoterRegistry on a Redis set per poll.
type RedisVoterRegistry struct {
	client *redis.Client
}

// NewRedisVoterRegistry creates a new Redis-backed VoterRegistry.
func NewRedisVoterRegistry(client *redis.Client) *RedisVoterRegistry {
	return &RedisVoterRegistry{client: client}
}

var _ VoterRegistry = (*RedisVoterRegistry)(nil)

/*
Register records a voter for a poll.

Description: SADD reports how many members were newly added, so first-vote
detection and registration happen in one atomic round trip.

Parameters:
  - context: context.Context
  - pollID: string
  - voterKey: string

Returns:
  - bool: True if this is the voter's first vote in the poll
  - error: Execution failures
*/
func (registry *RedisVoterRegistry) Register(context context.Context, pollID, voterKey string) (bool, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixPollVoters + pollID

	// Add the voter to the poll's set
	added, err := registry.client.SAdd(context, key, voterKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis_poll_voters_register_failed: %w", err)
	}

	// A zero count means the voter was already present
	return added == 1, nil
}
