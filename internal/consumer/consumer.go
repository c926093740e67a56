package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/internal/events"
	"github.com/avolkov-dev/order-notifier/internal/service"
	"github.com/avolkov-dev/order-notifier/internal/storage/rabbitmq"
	"github.com/avolkov-dev/order-notifier/pkg/switchctl"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// maxRetries is the maximum number of delivery attempts for an order confirmation.
	maxRetries = 5
	// defaultWorkerCount is the default number of worker goroutines in the pool.
	defaultWorkerCount = 5
)

// Consumer listens to a RabbitMQ queue and delivers order confirmations using
// a pool of workers. Delivery itself goes through the OrderService, which owns
// the injected Notifier; the consumer only handles queue mechanics and retry
// bookkeeping.
type Consumer struct {
	cfg         *config.Config
	logger      zerolog.Logger
	conn        *amqp.Connection // Raw connection to create channels for each worker.
	service     *service.OrderService
	queue       repo.OrderQueue
	publisher   events.Publisher
	alertSwitch *switchctl.Switch
	workerCount int
}

// New creates a new instance of Consumer.
func New(
	cfg *config.Config,
	logger *zerolog.Logger,
	conn *amqp.Connection,
	service *service.OrderService,
	queue repo.OrderQueue,
	publisher events.Publisher,
	alertSwitch *switchctl.Switch,
) *Consumer {
	return &Consumer{
		cfg:         cfg,
		logger:      logger.With().Str("component", "consumer").Logger(),
		conn:        conn,
		service:     service,
		queue:       queue,
		publisher:   publisher,
		alertSwitch: alertSwitch,
		workerCount: defaultWorkerCount,
	}
}

// Start launches the worker pool to process messages from the queue.
// This is a blocking method that will run until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info().Int("count", c.workerCount).Msg("Starting worker pool")
	var wg sync.WaitGroup

	for i := 0; i < c.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.runWorker(ctx, workerID)
		}(i + 1)
	}

	wg.Wait()
	c.logger.Info().Msg("Consumer stopped")
}

// runWorker contains the main logic for a single worker goroutine.
func (c *Consumer) runWorker(ctx context.Context, workerID int) {
	logger := c.logger.With().Int("worker_id", workerID).Logger()
	logger.Info().Msg("Worker started")

	ch, err := c.conn.Channel()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open channel for worker")
		return
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error().Err(err).Msg("Failed to set QoS")
		return
	}

	msgs, err := ch.Consume(
		rabbitmq.OrdersQueue,
		fmt.Sprintf("worker-%d", workerID), // A unique consumer tag.
		false,                              // autoAck: false. We will manually acknowledge messages.
		false,                              // exclusive
		false,                              // noLocal
		false,                              // noWait
		nil,                                // args
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register a consumer")
		return
	}

	logger.Info().Msg("Worker is waiting for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Worker stopping due to context cancellation")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Warn().Msg("Message channel closed by RabbitMQ, worker stopping")
				return
			}
			c.handleMessage(ctx, msg, logger)
		}
	}
}

// handleMessage processes a single message from the queue.
func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
	var order model.Order
	if err := json.Unmarshal(msg.Body, &order); err != nil {
		logger.Error().Err(err).Msg("Failed to unmarshal message, rejecting")
		_ = msg.Nack(false, false)
		return
	}

	log := logger.With().Stringer("order_id", order.ID).Logger()

	latest, err := c.service.GetOrderByID(ctx, order.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("Order no longer exists, skipping")
			_ = msg.Ack(false)
			return
		}
		// A storage blip is not "no longer pending": requeue so the
		// confirmation is not dropped.
		log.Error().Err(err).Msg("Failed to load order state, requeueing")
		_ = msg.Nack(false, true)
		return
	}
	if latest.Status != model.StatusPending {
		log.Warn().Str("status", string(latest.Status)).Msg("Order is no longer pending, skipping")
		_ = msg.Ack(false)
		return
	}

	log.Info().Int("attempt", order.Attempts+1).Msg("Delivering order confirmation")
	err = c.service.ProcessOrder(ctx, &order)
	if err != nil {
		c.handleSendError(ctx, &order, err, msg, log)
		return
	}

	log.Info().Msg("Order confirmation delivered")
	order.Status = model.StatusNotified
	now := time.Now().UTC()
	order.NotifiedAt = &now
	if err := c.service.UpdateOrder(ctx, &order); err != nil {
		log.Error().Err(err).Msg("CRITICAL: failed to update order status to 'notified' after successful delivery")
		_ = msg.Nack(false, true)
		return
	}

	if err := c.publisher.OrderConfirmed(ctx, &order); err != nil {
		// The confirmation was delivered; the event stream is best-effort.
		log.Error().Err(err).Msg("failed to publish order confirmed event")
	}

	_ = msg.Ack(false)
}

// handleSendError encapsulates the logic for processing failed deliveries.
func (c *Consumer) handleSendError(ctx context.Context, o *model.Order, sendErr error, msg amqp.Delivery, log zerolog.Logger) {
	o.Attempts++

	if o.Attempts >= maxRetries {
		log.Error().Err(sendErr).Int("attempts", o.Attempts).Msg("Max retries reached, failing order confirmation")
		o.Status = model.StatusFailed
		if err := c.service.UpdateOrder(ctx, o); err != nil {
			log.Error().Err(err).Msg("CRITICAL: failed to update order status to 'failed'")
			_ = msg.Nack(false, true) // Requeue.
			return
		}
		if err := c.alertSwitch.Press(); err != nil {
			log.Error().Err(err).Msg("failed to raise delivery failure alert")
		}
		_ = msg.Ack(false)
		return
	}

	backoffDuration := calculateExponentialBackoff(o.Attempts)
	log.Warn().
		Err(sendErr).
		Int("attempt", o.Attempts).
		Dur("backoff", backoffDuration).
		Msg("Delivery failed, scheduling retry")

	if err := c.queue.PublishRetry(ctx, o, backoffDuration); err != nil {
		log.Error().Err(err).Msg("CRITICAL: failed to publish message to retry queue")
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}

// calculateExponentialBackoff implements the exponential backoff strategy.
// Formula: 5s * 2^(attempt)
func calculateExponentialBackoff(attempt int) time.Duration {
	baseDelay := 5.0
	delay := baseDelay * math.Pow(2, float64(attempt))
	return time.Duration(delay) * time.Second
}
