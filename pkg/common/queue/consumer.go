package queue

import (
	"context"

	"github.com/az3l1t/analysis-platform/pkg/common/config"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/segmentio/kafka-go"
)

// MessageHandler processes a single inbound message. A non-nil error is
// logged; the message is committed either way, so a poisonous payload is
// dropped rather than redelivered forever.
type MessageHandler func(ctx context.Context, message kafka.Message) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(topic string, groupID string) *Consumer {
	cfg := config.Load()
	if groupID == "" {
		groupID = cfg.KafkaGroupID
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{reader: reader}
}

func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			message, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Log.WithError(err).Error("Failed to fetch message")
				continue
			}

			if err := handler(ctx, message); err != nil {
				logger.Log.WithError(err).WithField("topic", c.reader.Config().Topic).
					Error("Failed to process message")
			}

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Log.WithError(err).Error("Failed to commit message")
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
