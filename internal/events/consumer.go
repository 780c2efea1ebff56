package events

import (
	"context"
	"encoding/json"
	"errors"

	"butik/internal/config"
	"butik/pkg/kafka"
	"butik/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// StartConsumer subscribes to the configured broker and logs every order
// event it receives. It returns a stop function; with no broker it is a no-op.
func StartConsumer(ctx context.Context, cfg *config.Config, log *zap.Logger) (func() error, error) {
	switch cfg.EventsBroker {
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return nil, err
		}
		err = client.Consume(func(msg amqp.Delivery) error {
			return logEvent(log, msg.Body)
		})
		if err != nil {
			client.Close()
			return nil, err
		}
		return client.Close, nil

	case "kafka":
		reader := kafka.NewClient(cfg.KafkaBrokers).NewReader(cfg.KafkaTopic, "butik-order-log")
		go func() {
			for {
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Error("kafka consumer stopped", zap.Error(err))
					}
					return
				}
				if err := logEvent(log, msg.Value); err != nil {
					log.Warn("skipping malformed event", zap.Error(err))
				}
			}
		}()
		return reader.Close, nil
	}
	return func() error { return nil }, nil
}

func logEvent(log *zap.Logger, body []byte) error {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return err
	}
	log.Info("received order event",
		zap.String("type", evt.Type),
		zap.String("order_id", evt.OrderID),
		zap.String("user_id", evt.UserID),
		zap.String("status", evt.Status),
	)
	return nil
}
