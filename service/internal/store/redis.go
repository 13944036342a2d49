package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ragnarok:match:"

// RedisCache is a Cache backed by Redis. Snapshots expire after TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and pings it.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

func key(id uuid.UUID) string { return keyPrefix + id.String() }

func (c *RedisCache) Put(ctx context.Context, id uuid.UUID, s Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(id), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching snapshot of %s: %w", id, err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	b, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot of %s: %w", id, err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (c *RedisCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, key(id)).Err()
}
