// Package events publishes order lifecycle events to a broker so downstream
// systems (analytics, fulfilment) can react without polling the database.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events.
type Publisher interface {
	// OrderConfirmed reports that the confirmation for an order was delivered.
	OrderConfirmed(ctx context.Context, o *model.Order) error
}

// orderConfirmedEvent is the wire format of the confirmation event.
type orderConfirmedEvent struct {
	OrderID     string    `json:"order_id"`
	Number      string    `json:"number"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher writes order events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher over the configured brokers.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// OrderConfirmed implements the Publisher interface.
func (p *KafkaPublisher) OrderConfirmed(ctx context.Context, o *model.Order) error {
	event := orderConfirmedEvent{
		OrderID:     o.ID.String(),
		Number:      o.Number,
		Total:       o.Total.String(),
		Currency:    o.Currency,
		ConfirmedAt: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.ID.String()),
		Value: value,
	})
	if err != nil {
		p.logger.Error().Err(err).Stringer("id", o.ID).Msg("failed to publish order confirmed event")
		return err
	}

	p.logger.Info().Stringer("id", o.ID).Msg("order confirmed event published")
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ Publisher = (*NopPublisher)(nil)

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

// OrderConfirmed implements the Publisher interface and does nothing.
func (NopPublisher) OrderConfirmed(context.Context, *model.Order) error { return nil }

// NewPublisher returns a KafkaPublisher when brokers are configured and a
// NopPublisher otherwise.
func NewPublisher(cfg *config.Config, logger *zerolog.Logger) Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info().Msg("no kafka brokers configured, order events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg.Kafka, logger)
}
