package cache

import (
	"context"

	"github.com/assetops/backend/internal/application/link"
	"go.uber.org/zap"
)

// Invalidator broadcasts link invalidations to the other instances
type Invalidator interface {
	Publish(ctx context.Context, code string) error
}

// TieredLinkCache reads the local LRU first and Redis second. Writes go to
// both tiers. Deletes are broadcast so every instance drops its LRU entry.
type TieredLinkCache struct {
	l1          *LRULinkCache
	l2          link.Cache
	invalidator Invalidator
	logger      *zap.Logger
}

// TieredLinkCacheOption is a functional option for configuring the cache
type TieredLinkCacheOption func(*TieredLinkCache)

// WithInvalidator sets the cross-instance invalidator
func WithInvalidator(invalidator Invalidator) TieredLinkCacheOption {
	return func(c *TieredLinkCache) {
		c.invalidator = invalidator
	}
}

// WithTieredLogger sets the logger
func WithTieredLogger(logger *zap.Logger) TieredLinkCacheOption {
	return func(c *TieredLinkCache) {
		c.logger = logger
	}
}

// NewTieredLinkCache creates a two-tier link cache
func NewTieredLinkCache(l1 *LRULinkCache, l2 link.Cache, opts ...TieredLinkCacheOption) *TieredLinkCache {
	c := &TieredLinkCache{
		l1:     l1,
		l2:     l2,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get reads L1 then L2, populating L1 on an L2 hit. An L2 error is logged and
// reported as a miss so the caller falls through to the database.
func (c *TieredLinkCache) Get(ctx context.Context, code string) (*link.Resolved, error) {
	if r, _ := c.l1.Get(ctx, code); r != nil {
		return r, nil
	}

	r, err := c.l2.Get(ctx, code)
	if err != nil {
		c.logger.Warn("L2 link cache error", zap.String("code", code), zap.Error(err))
		return nil, nil
	}
	if r != nil {
		_ = c.l1.Set(ctx, r)
	}
	return r, nil
}

// Set writes both tiers
func (c *TieredLinkCache) Set(ctx context.Context, r *link.Resolved) error {
	_ = c.l1.Set(ctx, r)
	if err := c.l2.Set(ctx, r); err != nil {
		c.logger.Warn("failed to set L2 link cache", zap.String("code", r.Code), zap.Error(err))
	}
	return nil
}

// Delete removes the link from both tiers and notifies other instances
func (c *TieredLinkCache) Delete(ctx context.Context, code string) error {
	_ = c.l1.Delete(ctx, code)
	if err := c.l2.Delete(ctx, code); err != nil {
		return err
	}
	if c.invalidator != nil {
		if err := c.invalidator.Publish(ctx, code); err != nil {
			c.logger.Warn("failed to publish link invalidation", zap.String("code", code), zap.Error(err))
		}
	}
	return nil
}

// InvalidateLocal drops the L1 entry only. It is the invalidation callback.
func (c *TieredLinkCache) InvalidateLocal(code string) {
	_ = c.l1.Delete(context.Background(), code)
}

var _ link.Cache = (*TieredLinkCache)(nil)
