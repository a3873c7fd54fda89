// Package cache keeps raw source payloads in Redis so repeated selections of
// the same coin skip the network.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "radar:csv:"

// RedisCache implements collector.PayloadCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return newWithClient(client, ttl), nil
}

func newWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Key returns the Redis key for symbol.
func Key(symbol string) string {
	return keyPrefix + strings.ToUpper(strings.TrimSpace(symbol))
}

// Get returns the cached payload. A missing key is reported as ok=false with
// a nil error.
func (c *RedisCache) Get(ctx context.Context, symbol string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, Key(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get payload: %w", err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, symbol string, payload []byte) error {
	if err := c.client.Set(ctx, Key(symbol), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set payload: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload for symbol so the next load refetches.
func (c *RedisCache) Invalidate(ctx context.Context, symbol string) error {
	if err := c.client.Del(ctx, Key(symbol)).Err(); err != nil {
		return fmt.Errorf("delete payload: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
