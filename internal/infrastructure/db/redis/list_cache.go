package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/folio/portfolio-api/internal/api/metrics"
)

// Client is the subset of *redis.Client the list cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// ListCache stores list responses under versioned keys:
//
//	cache:<namespace>:version          -> current generation
//	cache:<namespace>:v<gen>:<key>     -> payload
//
// Invalidate bumps the generation, so stale payloads become unreachable and
// expire on their own TTL.
type ListCache struct {
	client Client
}

// NewListCache wraps client as a ports.ListCache.
func NewListCache(client Client) *ListCache {
	return &ListCache{client: client}
}

// Get looks key up under the current generation and returns that generation
// for the matching Set.
func (c *ListCache) Get(ctx context.Context, namespace, key string) ([]byte, int64, bool, error) {
	gen, err := c.generation(ctx, namespace)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, entryKey(namespace, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookupsTotal.WithLabelValues(namespace, "miss").Inc()
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("cache get: %w", err)
	}
	metrics.CacheLookupsTotal.WithLabelValues(namespace, "hit").Inc()
	return raw, gen, true, nil
}

// Set writes under gen, never under the current generation: after an
// Invalidate the entry is already unreachable.
func (c *ListCache) Set(ctx context.Context, namespace string, gen int64, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, entryKey(namespace, gen, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ListCache) Invalidate(ctx context.Context, namespace string) error {
	if err := c.client.Incr(ctx, versionKey(namespace)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	metrics.CacheInvalidationsTotal.WithLabelValues(namespace).Inc()
	return nil
}

// Ping reports cache liveness for the readiness check.
func (c *ListCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// generation returns the current namespace generation; an unset counter is 0.
func (c *ListCache) generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.client.Get(ctx, versionKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return gen, nil
}

func versionKey(namespace string) string {
	return fmt.Sprintf("cache:%s:version", namespace)
}

func entryKey(namespace string, gen int64, key string) string {
	return fmt.Sprintf("cache:%s:v%d:%s", namespace, gen, key)
}
