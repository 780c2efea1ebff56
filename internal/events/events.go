package events

import (
	"context"
	"fmt"
	"time"

	"butik/internal/config"
	"butik/pkg/kafka"
	"butik/pkg/rabbitmq"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types published over the order lifecycle.
const (
	OrderCreated       = "order.created"
	OrderPaid          = "order.paid"
	OrderStatusChanged = "order.status_changed"
)

// Event is the payload carried on the broker.
type Event struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Amount     string    `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers order events to a broker.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NewPublisher returns the publisher selected by EVENTS_BROKER.
// An empty broker yields a publisher that only logs.
func NewPublisher(cfg *config.Config, log *zap.Logger) (Publisher, error) {
	switch cfg.EventsBroker {
	case "":
		return NewLogPublisher(log), nil
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return nil, err
		}
		return &RabbitPublisher{client: client}, nil
	case "kafka":
		client := kafka.NewClient(cfg.KafkaBrokers)
		if !client.Enabled() {
			return nil, fmt.Errorf("KAFKA_BROKERS is empty")
		}
		return &KafkaPublisher{writer: client.NewWriter(cfg.KafkaTopic)}, nil
	}
	return nil, fmt.Errorf("unsupported events broker %q", cfg.EventsBroker)
}

// LogPublisher writes events to the logger instead of a broker.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, evt Event) error {
	p.log.Info("order event",
		zap.String("type", evt.Type),
		zap.String("order_id", evt.OrderID),
		zap.String("status", evt.Status),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// RabbitPublisher publishes events to the order queue.
type RabbitPublisher struct {
	client *rabbitmq.Client
}

func (p *RabbitPublisher) Publish(_ context.Context, evt Event) error {
	return p.client.PublishJSON(evt.Type, evt)
}

func (p *RabbitPublisher) Close() error { return p.client.Close() }

// KafkaPublisher publishes events keyed by order id.
type KafkaPublisher struct {
	writer *kafkago.Writer
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	return kafka.PublishJSON(ctx, p.writer, evt.OrderID, evt.Type, evt)
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }
