package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ensure OrderRepository implements the interface
var _ repo.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implements the domain.repository.OrderRepository interface
// using PostgreSQL as a backend.
type OrderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new instance of the OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *OrderRepository {
	return &OrderRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Logger(),
	}
}

const insertOrder = `
INSERT INTO orders (id, number, customer_email, customer_phone, total, currency, status, attempts, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, number, customer_email, customer_phone, total, currency, status, attempts, notified_at, created_at, updated_at`

const selectOrderByID = `
SELECT id, number, customer_email, customer_phone, total, currency, status, attempts, notified_at, created_at, updated_at
FROM orders
WHERE id = $1`

const updateOrderStatus = `
UPDATE orders
SET status = $2, attempts = $3, notified_at = $4, updated_at = now()
WHERE id = $1
RETURNING id`

const cancelOrder = `
UPDATE orders
SET status = 'cancelled', updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING id`

// Save persists a new order and returns the created object with DB-generated fields.
func (r *OrderRepository) Save(ctx context.Context, o *model.Order) (*model.Order, error) {
	row := r.pool.QueryRow(ctx, insertOrder,
		o.ID, o.Number, o.CustomerEmail, o.CustomerPhone,
		o.Total, o.Currency, string(o.Status), o.Attempts,
		o.CreatedAt, o.UpdatedAt,
	)

	created, err := scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, repo.ErrDuplicateRecord
		}
		r.logger.Err(err).Msg("cannot create order")
		return nil, fmt.Errorf("postgres: insert order failed: %w", err)
	}

	return created, nil
}

// GetByID retrieves an order by its unique ID.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	row := r.pool.QueryRow(ctx, selectOrderByID, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Stringer("id", id).Msg("order not found by id")
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Str("method", "GetByID").Msg("cannot get order")
		return nil, fmt.Errorf("postgres: select order failed: %w", err)
	}

	return order, nil
}

// Update updates the mutable fields of an order.
func (r *OrderRepository) Update(ctx context.Context, o *model.Order) error {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, updateOrderStatus, o.ID, string(o.Status), o.Attempts, o.NotifiedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Stringer("id", o.ID).Msg("tried to update non-existent order")
			return repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", o.ID).Msg("cannot update order")
		return fmt.Errorf("postgres: update order failed: %w", err)
	}
	return nil
}

// Delete performs a "soft delete" on an order by setting its status to 'cancelled'.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var updated uuid.UUID
	err := r.pool.QueryRow(ctx, cancelOrder, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Stringer("id", id).Msg("tried to cancel non-existent order")
			return repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot cancel order")
		return fmt.Errorf("postgres: cancel order failed: %w", err)
	}
	return nil
}

// scanOrder maps a database row onto the domain model.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o      model.Order
		total  decimal.Decimal
		status string
	)
	err := row.Scan(
		&o.ID, &o.Number, &o.CustomerEmail, &o.CustomerPhone,
		&total, &o.Currency, &status, &o.Attempts,
		&o.NotifiedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Total = total
	o.Status = model.Status(status)
	return &o, nil
}
