package repository

import (
	"context"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	"github.com/google/uuid"
)

// OrderRepository defines the contract for order persistence (e.g., a database).
type OrderRepository interface {
	// Save persists a new order.
	Save(ctx context.Context, o *model.Order) (*model.Order, error)

	// GetByID retrieves an order by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Update updates the mutable fields of an order, primarily its status and attempts count.
	Update(ctx context.Context, o *model.Order) error

	// Delete cancels a pending order.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderCache defines the contract for a caching layer.
type OrderCache interface {
	// Get retrieves an item from the cache.
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Set adds an item to the cache for a specified duration.
	Set(ctx context.Context, o *model.Order, expiration time.Duration) error

	// Delete removes an item from the cache.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderQueue defines the contract for the confirmation dispatch queue.
// This provides an abstraction over a system like RabbitMQ.
type OrderQueue interface {
	// Publish hands an order over for confirmation delivery.
	Publish(ctx context.Context, o *model.Order) error

	// PublishRetry schedules an order for a retry attempt with a specific delay.
	PublishRetry(ctx context.Context, o *model.Order, retryDelay time.Duration) error
}
