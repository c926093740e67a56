package redis

import (
	"context"
	"errors"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ensure CachedOrderRepository implements the interface
var _ repo.OrderRepository = (*CachedOrderRepository)(nil)

// CachedOrderRepository is a decorator for an OrderRepository
// that adds a caching layer using Redis.
type CachedOrderRepository struct {
	primaryRepo repo.OrderRepository
	cache       repo.OrderCache
	logger      zerolog.Logger
	ttl         time.Duration
}

// NewCachedOrderRepository creates a new instance of the cached repository.
// It takes the primary repository and the cache as dependencies.
func NewCachedOrderRepository(
	primaryRepo repo.OrderRepository,
	cache repo.OrderCache,
	logger *zerolog.Logger,
) *CachedOrderRepository {
	return &CachedOrderRepository{
		primaryRepo: primaryRepo,
		cache:       cache,
		logger:      logger.With().Str("layer", "cached_repository").Logger(),
		ttl:         time.Hour * 24, // Default cache TTL of 24 hours
	}
}

// Save first persists the order in the primary repository,
// then warms up the cache with the new data.
func (r *CachedOrderRepository) Save(ctx context.Context, o *model.Order) (*model.Order, error) {
	created, err := r.primaryRepo.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, created, r.ttl); err != nil {
		r.logger.Error().Err(err).Stringer("id", created.ID).Msg("failed to cache order after save")
	}

	return created, nil
}

// GetByID implements the cache-aside pattern.
// It first tries to fetch the data from the cache. If it's a miss,
// it fetches from the primary repository, caches the result, and then returns it.
func (r *CachedOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	cached, err := r.cache.Get(ctx, id)
	if err == nil {
		r.logger.Info().Stringer("id", id).Msg("cache hit")
		return cached, nil
	}

	if !errors.Is(err, repo.ErrNotFound) {
		r.logger.Error().Err(err).Stringer("id", id).Msg("cache get error, falling back to primary repository")
	} else {
		r.logger.Info().Stringer("id", id).Msg("cache miss")
	}

	primary, err := r.primaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, primary, r.ttl); err != nil {
		r.logger.Error().Err(err).Stringer("id", primary.ID).Msg("failed to set cache after db fetch")
	}

	return primary, nil
}

// Update first updates the data in the primary repository,
// then invalidates the corresponding cache entry.
func (r *CachedOrderRepository) Update(ctx context.Context, o *model.Order) error {
	if err := r.primaryRepo.Update(ctx, o); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, o.ID); err != nil {
		r.logger.Error().Err(err).Stringer("id", o.ID).Msg("failed to invalidate cache after update")
	}

	return nil
}

// Delete first deletes the data from the primary repository,
// then invalidates the cache.
func (r *CachedOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.primaryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Error().Err(err).Stringer("id", id).Msg("failed to invalidate cache after delete")
	}

	return nil
}
