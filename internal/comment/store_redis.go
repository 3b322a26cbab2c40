// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/crafiq/crafiq/internal/platform/constants"
)

// # Redis Rate Limiter

// redisRateLimiter implements [RateLimiter] with a fixed-window counter.
//
// Each user gets a counter key that expires when the window closes. INCR is
// atomic in Redis, so concurrent posts from one user cannot slip past the cap.
type redisRateLimiter struct {
	client *redis.Client
}

// NewRateLimiter constructs a Redis backed comment rate limiter.
func NewRateLimiter(client *redis.Client) RateLimiter {
	return &redisRateLimiter{client: client}
}

// Allow consumes one posting slot in the user's current window.
func (limiter *redisRateLimiter) Allow(context context.Context, userID string) (bool, int, error) {
	key := constants.RedisPrefixCommentRate + userID

	// Atomic increment; the first hit in a window creates the counter
	count, err := limiter.client.Incr(context, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis: failed to increment rate counter: %w", err)
	}

	// Start the window clock on the first hit only
	if count == 1 {
		if err := limiter.client.Expire(context, key, constants.CommentRateLimitWindow).Err(); err != nil {
			return false, 0, fmt.Errorf("redis: failed to set rate window: %w", err)
		}
	}

	if count > constants.CommentRateLimitMax {
		ttl, err := limiter.client.TTL(context, key).Result()
		if err != nil || ttl < 0 {
			return false, int(constants.CommentRateLimitWindow.Seconds()), nil
		}
		return false, int(ttl.Seconds()), nil
	}

	return true, 0, nil
}
