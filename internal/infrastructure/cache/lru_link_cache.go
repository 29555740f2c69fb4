package cache

import (
	"context"
	"time"

	"github.com/assetops/backend/internal/application/link"
	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRULinkCache is a per-process LRU of resolved links with a TTL. Each
// instance keeps its own entries.
type LRULinkCache struct {
	lru *expirable.LRU[string, *link.Resolved]
}

// NewLRULinkCache creates an LRU holding at most size links for ttl each
func NewLRULinkCache(size int, ttl time.Duration) *LRULinkCache {
	return &LRULinkCache{lru: expirable.NewLRU[string, *link.Resolved](size, nil, ttl)}
}

// Get returns the cached link, or nil on a miss
func (c *LRULinkCache) Get(_ context.Context, code string) (*link.Resolved, error) {
	if r, ok := c.lru.Get(code); ok {
		metrics.CacheLookups.WithLabelValues(metrics.TierLRU, metrics.ResultHit).Inc()
		return r, nil
	}
	metrics.CacheLookups.WithLabelValues(metrics.TierLRU, metrics.ResultMiss).Inc()
	return nil, nil
}

// Set adds or replaces the link
func (c *LRULinkCache) Set(_ context.Context, r *link.Resolved) error {
	c.lru.Add(r.Code, r)
	return nil
}

// Delete removes the link
func (c *LRULinkCache) Delete(_ context.Context, code string) error {
	c.lru.Remove(code)
	return nil
}

// Len returns the number of cached links
func (c *LRULinkCache) Len() int {
	return c.lru.Len()
}

var _ link.Cache = (*LRULinkCache)(nil)
