package queue

import (
	"context"
	"time"

	"github.com/az3l1t/analysis-platform/pkg/common/config"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/segmentio/kafka-go"
)

// Producer writes text messages to a single named queue. Message bodies are
// the raw JSON of the wire DTOs; there is no envelope.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(topic string) *Producer {
	cfg := config.Load()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"key":   key,
			"topic": p.writer.Topic,
		}).Error("Failed to publish message")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"key":   key,
		"topic": p.writer.Topic,
	}).Info("Message published")

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
