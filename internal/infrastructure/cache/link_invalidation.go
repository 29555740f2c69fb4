package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultInvalidationChannel is the Pub/Sub channel for link invalidations
const DefaultInvalidationChannel = "shortlink:invalidate"

// RedisLinkInvalidator broadcasts link codes over Redis Pub/Sub
type RedisLinkInvalidator struct {
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewRedisLinkInvalidator creates an invalidator. The caller owns the client.
func NewRedisLinkInvalidator(client redis.UniversalClient, logger *zap.Logger) *RedisLinkInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLinkInvalidator{
		client:  client,
		channel: DefaultInvalidationChannel,
		logger:  logger,
	}
}

// Publish broadcasts the code
func (i *RedisLinkInvalidator) Publish(ctx context.Context, code string) error {
	if err := i.client.Publish(ctx, i.channel, code).Err(); err != nil {
		return fmt.Errorf("failed to publish link invalidation: %w", err)
	}
	return nil
}

// Subscribe calls onInvalidate for every broadcast code until ctx is done.
// It blocks and should run in its own goroutine.
func (i *RedisLinkInvalidator) Subscribe(ctx context.Context, onInvalidate func(code string)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
	}()

	pubsub := i.client.Subscribe(ctx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	i.logger.Info("subscribed to link invalidation channel", zap.String("channel", i.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			i.logger.Info("link invalidation subscription stopped")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("link invalidation channel closed")
				return nil
			}
			onInvalidate(msg.Payload)
		}
	}
}

var _ Invalidator = (*RedisLinkInvalidator)(nil)
