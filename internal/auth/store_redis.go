// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/constants"
)

// # Redis Session Repository

// redisSessionRepository implements [SessionRepository] on Redis.
//
// Sessions expire automatically with the refresh token's TTL, so no
// background cleanup is ever needed.
type redisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a Redis backed session store.
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

// Create stores a session under the token hash with a TTL.
func (repository *redisSessionRepository) Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal session: %w", err)
	}

	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store session: %w", err)
	}

	return nil
}

// Find resolves a session by token hash. Expired keys simply vanish.
func (repository *redisSessionRepository) Find(context context.Context, tokenHash string) (*Session, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("redis: failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("redis: failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete revokes a session by token hash. Deleting a missing key is a no-op.
func (repository *redisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete session: %w", err)
	}
	return nil
}
