package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Ensure OrderQueue implements the repository interface at compile time.
var _ repo.OrderQueue = (*OrderQueue)(nil)

// Constants for our RabbitMQ topology.
const (
	OrdersExchange = "orders.exchange"
	RetryExchange  = "orders.retry.exchange"

	OrdersQueue = "orders.queue.confirm"
	RetryQueue  = "orders.queue.retry.delay"

	Direct = "direct"
)

// OrderQueue implements the repository.OrderQueue interface. It acts as a PUBLISHER.
// It uses the low-level amqp091-go library directly for reliability.
type OrderQueue struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger zerolog.Logger
}

// NewOrderQueue creates a new instance of the OrderQueue publisher.
// It receives a shared amqp.Connection to create its own channel.
func NewOrderQueue(conn *amqp.Connection, logger *zerolog.Logger) (*OrderQueue, error) {
	channel, err := conn.Channel()
	if err != nil {
		logger.Error().Err(err).Msg("storage: rabbitMQ: New: Failed to open a channel")
		return nil, fmt.Errorf("storage: rabbitMQ: New: Failed to open a channel: %w", err)
	}

	queue := &OrderQueue{
		conn:   conn,
		ch:     channel,
		logger: logger.With().Str("component", "rabbitmq_publisher").Logger(),
	}

	if err = queue.setupTopology(); err != nil {
		queue.logger.Error().Err(err).Msg("storage: rabbitMQ: New: Failed to setup topology")
		return nil, fmt.Errorf("storage: rabbitMQ: New: Failed to setup topology: %w", err)
	}

	return queue, nil
}

// setupTopology declares all necessary exchanges and queues.
// The retry queue dead-letters back into the orders exchange so an expired
// retry message re-enters the normal confirmation flow.
func (q *OrderQueue) setupTopology() error {
	q.logger.Info().Msg("setting up rabbitmq topology")

	exchangesToDeclare := []struct {
		name string
		kind string
	}{
		{OrdersExchange, Direct},
		{RetryExchange, Direct},
	}
	for _, exInfo := range exchangesToDeclare {
		if err := q.ch.ExchangeDeclare(exInfo.name, exInfo.kind, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exInfo.name, err)
		}
	}

	if _, err := q.ch.QueueDeclare(OrdersQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", OrdersQueue, err)
	}
	retryQueueArgs := amqp.Table{"x-dead-letter-exchange": OrdersExchange}
	if _, err := q.ch.QueueDeclare(RetryQueue, true, false, false, false, retryQueueArgs); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", RetryQueue, err)
	}

	if err := q.ch.QueueBind(OrdersQueue, "", OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to exchange %s: %w", OrdersQueue, OrdersExchange, err)
	}
	if err := q.ch.QueueBind(RetryQueue, "", RetryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to exchange %s: %w", RetryQueue, RetryExchange, err)
	}

	q.logger.Info().Msg("rabbitmq topology setup successful")
	return nil
}

// Publish hands an order over for confirmation delivery.
func (q *OrderQueue) Publish(ctx context.Context, o *model.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		q.logger.Error().Err(err).Stringer("id", o.ID).Msg("failed to marshal order")
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	return q.ch.PublishWithContext(ctx, OrdersExchange, "", false, false, msg)
}

// PublishRetry schedules an order for a retry attempt. The per-message TTL
// parks it in the retry queue until the dead-letter exchange routes it back.
func (q *OrderQueue) PublishRetry(ctx context.Context, o *model.Order, retryDelay time.Duration) error {
	body, err := json.Marshal(o)
	if err != nil {
		q.logger.Error().Err(err).Stringer("id", o.ID).Msg("failed to marshal order for retry")
		return fmt.Errorf("failed to marshal order for retry: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Expiration:   strconv.FormatInt(retryDelay.Milliseconds(), 10),
	}

	return q.ch.PublishWithContext(ctx, RetryExchange, "", false, false, msg)
}

// Close gracefully shuts down the channel. The connection is managed by Fx.
func (q *OrderQueue) Close() error {
	if q.ch != nil {
		return q.ch.Close()
	}
	return nil
}
