package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/internal/notify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// confirmationMessage is the fixed text sent to the customer once an order is
// accepted. The order number is the only variable part.
const confirmationMessage = "Your order %s has been confirmed. Thank you for shopping with us!"

// OrderService encapsulates the business logic for managing orders and
// delivering their confirmations. It depends on the Notifier capability, never
// on a concrete channel: the injected instance may be a single channel, a
// composite fan-out, or a test double, and the service cannot tell the
// difference.
type OrderService struct {
	repo     repo.OrderRepository
	queue    repo.OrderQueue
	notifier notify.Notifier
	logger   zerolog.Logger
}

func NewOrderService(
	repo repo.OrderRepository,
	queue repo.OrderQueue,
	notifier notify.Notifier,
	logger *zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:     repo,
		queue:    queue,
		notifier: notifier,
		logger:   logger.With().Str("layer", "service").Logger(),
	}
}

// CreateOrder orchestrates the acceptance of a new order.
// It validates input, persists the order, and publishes it to the dispatch queue.
func (s *OrderService) CreateOrder(ctx context.Context, number, customerEmail, customerPhone string, total decimal.Decimal, currency string) (*model.Order, error) {
	s.logger.Info().Str("number", number).Msg("creating new order")

	if _, err := mail.ParseAddress(customerEmail); err != nil {
		s.logger.Warn().Err(err).Str("email", customerEmail).Msg("invalid customer email")
		return nil, fmt.Errorf("invalid email format: %w", err)
	}
	if total.IsNegative() {
		s.logger.Warn().Str("total", total.String()).Msg("negative order total")
		return nil, fmt.Errorf("order total cannot be negative: %s", total)
	}

	order := model.NewOrder(number, customerEmail, customerPhone, total, currency)

	created, err := s.repo.Save(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save order")
		return nil, err
	}
	s.logger.Info().Stringer("id", created.ID).Msg("order saved successfully")

	if err := s.queue.Publish(ctx, created); err != nil {
		s.logger.Error().Err(err).Stringer("id", created.ID).Msg("CRITICAL: failed to publish order to queue after saving")
		return nil, fmt.Errorf("failed to schedule order confirmation: %w", err)
	}
	s.logger.Info().Stringer("id", created.ID).Msg("order published to dispatch queue")

	return created, nil
}

// ProcessOrder delivers the confirmation for an order through the injected
// Notifier. It performs exactly one Send to the order's customer email and
// propagates the delivery error unchanged; retry policy lives with the caller.
func (s *OrderService) ProcessOrder(ctx context.Context, order *model.Order) error {
	s.logger.Info().Stringer("id", order.ID).Str("number", order.Number).Msg("processing order")

	message := fmt.Sprintf(confirmationMessage, order.Number)
	return s.notifier.Send(ctx, order.CustomerEmail, message)
}

// GetOrderByID retrieves an order by its ID.
// The business logic is simple: just ask the repository.
// The repository decorator handles the cache-aside logic transparently.
func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Msgf("Failed to get order by ID: %s", id)
		return nil, err
	}
	s.logger.Info().Msgf("Getting order by ID: %s", id)
	return o, nil
}

// UpdateOrder is used by the consumer to update the status after a delivery attempt.
// The repository decorator will handle cache invalidation.
func (s *OrderService) UpdateOrder(ctx context.Context, o *model.Order) error {
	o.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, o); err != nil {
		s.logger.Error().Err(err).Msgf("Failed to update order: %s", o.ID)
		return err
	}
	return nil
}

// CancelOrder cancels a pending order.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("can't get order")
		return err
	}

	if order.Status != model.StatusPending {
		s.logger.Warn().Str("order_id", id.String()).Msg("can't cancel order")
		return fmt.Errorf("cannot cancel order with status %s: %w", order.Status, repo.ErrNotPending)
	}

	s.logger.Info().Str("order_id", id.String()).Msg("cancel order")
	return s.repo.Delete(ctx, id)
}
