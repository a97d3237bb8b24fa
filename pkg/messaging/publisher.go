package messaging

import (
	"context"
	"encoding/json"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
)

// Broker enqueues one message onto one named queue. The Kafka producer in
// pkg/common/queue implements it.
type Broker interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Publisher serializes wire payloads onto the results and notifications
// queues. Both operations are best-effort at-most-once: every failure is
// logged here and deliberately not propagated, so a broker outage can never
// fail a database write that already committed.
type Publisher struct {
	results       Broker
	notifications Broker
}

func NewPublisher(results, notifications Broker) *Publisher {
	return &Publisher{
		results:       results,
		notifications: notifications,
	}
}

func (p *Publisher) PublishResults(ctx context.Context, payload models.SendResults) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).WithField("id", payload.ID).
			Error("Failed to serialize results payload")
		return
	}

	if err := p.results.Publish(ctx, payload.ID, body); err != nil {
		logger.Log.WithError(err).WithField("id", payload.ID).
			Error("Failed to publish results payload")
	}
}

func (p *Publisher) PublishNotification(ctx context.Context, notification models.Notification) {
	body, err := json.Marshal(notification)
	if err != nil {
		logger.Log.WithError(err).WithField("id", notification.AnalysisResultID).
			Error("Failed to serialize notification")
		return
	}

	if err := p.notifications.Publish(ctx, notification.AnalysisResultID, body); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"id":   notification.AnalysisResultID,
			"type": notification.NotificationType,
		}).Error("Failed to publish notification")
	}
}
