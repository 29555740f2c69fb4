package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/assetops/backend/internal/application/link"
	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultLinkKeyPrefix = "shortlink:"

// RedisLinkCache stores resolved links as JSON in Redis
type RedisLinkCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisLinkCacheOption is a functional option for configuring the cache
type RedisLinkCacheOption func(*RedisLinkCache)

// WithKeyPrefix sets the key prefix
func WithKeyPrefix(prefix string) RedisLinkCacheOption {
	return func(c *RedisLinkCache) {
		c.keyPrefix = prefix
	}
}

// WithRedisLogger sets the logger
func WithRedisLogger(logger *zap.Logger) RedisLinkCacheOption {
	return func(c *RedisLinkCache) {
		c.logger = logger
	}
}

// NewRedisLinkCache creates a Redis link cache. The caller owns the client.
func NewRedisLinkCache(client redis.UniversalClient, ttl time.Duration, opts ...RedisLinkCacheOption) *RedisLinkCache {
	c := &RedisLinkCache{
		client:    client,
		keyPrefix: defaultLinkKeyPrefix,
		ttl:       ttl,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisLinkCache) key(code string) string {
	return c.keyPrefix + code
}

// Get returns the cached link, or nil on a miss
func (c *RedisLinkCache) Get(ctx context.Context, code string) (*link.Resolved, error) {
	data, err := c.client.Get(ctx, c.key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues(metrics.TierRedis, metrics.ResultMiss).Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link from cache: %w", err)
	}

	var r link.Resolved
	if err := json.Unmarshal(data, &r); err != nil {
		// Undecodable entries are dropped and treated as a miss
		c.logger.Warn("discarding corrupt link cache entry", zap.String("code", code), zap.Error(err))
		_ = c.client.Del(ctx, c.key(code)).Err()
		metrics.CacheLookups.WithLabelValues(metrics.TierRedis, metrics.ResultMiss).Inc()
		return nil, nil
	}
	metrics.CacheLookups.WithLabelValues(metrics.TierRedis, metrics.ResultHit).Inc()
	return &r, nil
}

// Set stores the link with the cache TTL
func (c *RedisLinkCache) Set(ctx context.Context, r *link.Resolved) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}
	if err := c.client.Set(ctx, c.key(r.Code), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set link in cache: %w", err)
	}
	return nil
}

// Delete removes the link
func (c *RedisLinkCache) Delete(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, c.key(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete link from cache: %w", err)
	}
	return nil
}

var _ link.Cache = (*RedisLinkCache)(nil)
