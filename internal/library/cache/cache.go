// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package cache provides a read-through byte cache for library resources.
//
// # Consistency
//
// Writes invalidate eagerly (delete-on-write); entries also carry a short
// TTL as a backstop. The cache is an optimization only: a miss, a failed
// Set, or a failed Delete never surfaces to the client — PostgreSQL remains
// the source of truth.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the minimal cache contract used by the service layer.
type Store interface {
	// Get returns the cached payload for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key for at most ttl.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// # Redis implementation

// RedisStore implements [Store] on top of a shared Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the cached payload for key, or (nil, nil) on a miss.
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores payload under key with the provided TTL.
func (store *RedisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return store.client.Set(ctx, key, payload, ttl).Err()
}

// Delete removes the given keys.
func (store *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return store.client.Del(ctx, keys...).Err()
}

// # No-op implementation

// NoopStore implements [Store] without storing anything. It is used when no
// Redis URL is configured and in tests.
type NoopStore struct{}

// NewNoopStore creates a [Store] that always misses.
func NewNoopStore() *NoopStore { return &NoopStore{} }

func (*NoopStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (*NoopStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return nil
}

func (*NoopStore) Delete(ctx context.Context, keys ...string) error { return nil }
