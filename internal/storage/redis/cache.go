package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/pkg/keybuilder"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Ensure OrderCache implements the interface
var _ repo.OrderCache = (*OrderCache)(nil)

// OrderCache implements the domain.OrderCache interface
// using the standard go-redis client.
type OrderCache struct {
	redis  *goredis.Client
	logger zerolog.Logger
}

// NewOrderCache creates a new instance of the OrderCache.
func NewOrderCache(logger *zerolog.Logger, redis *goredis.Client) *OrderCache {
	return &OrderCache{
		redis:  redis,
		logger: logger.With().Str("layer", "redis_cache").Logger(),
	}
}

// Get retrieves an item from the cache.
func (c *OrderCache) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	key := keybuilder.RedisOrderKeyBuild(id)
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			c.logger.Info().Str("key", key).Str("cache", "miss").Msg("order not found in cache")
			return nil, repo.ErrNotFound
		}
		c.logger.Error().Err(err).Str("key", key).Msg("failed to get key from redis")
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to unmarshal order from cache")
		return nil, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	c.logger.Info().Str("key", key).Str("cache", "hit").Msg("order found in cache")
	return &order, nil
}

// Set adds an item to the cache for a specified duration.
func (c *OrderCache) Set(ctx context.Context, o *model.Order, expiration time.Duration) error {
	key := keybuilder.RedisOrderKeyBuild(o.ID)
	oBytes, err := json.Marshal(o)
	if err != nil {
		c.logger.Error().Err(err).Stringer("id", o.ID).Msg("failed to marshal order for cache")
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := c.redis.Set(ctx, key, oBytes, expiration).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to set key in redis")
		return err
	}

	c.logger.Info().Str("key", key).Msg("order successfully set in cache")
	return nil
}

// Delete removes an item from the cache.
func (c *OrderCache) Delete(ctx context.Context, id uuid.UUID) error {
	key := keybuilder.RedisOrderKeyBuild(id)
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to delete key from redis")
		return err
	}

	c.logger.Info().Str("key", key).Msg("successfully deleted key from redis")
	return nil
}
