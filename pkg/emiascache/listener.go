package emiascache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
	"github.com/segmentio/kafka-go"
)

// Listener ingests results-queue messages into the cache. Each message is an
// independent pipeline step: parse, key, store. Unparseable payloads are
// logged and dropped; there is no DLQ, no retry and no deduplication.
type Listener struct {
	cache Cache
}

func NewListener(cache Cache) *Listener {
	return &Listener{cache: cache}
}

// HandleMessage caches the raw received bytes, not a re-serialization, so the
// read path returns exactly what the analysis service published.
func (l *Listener) HandleMessage(ctx context.Context, message kafka.Message) error {
	var payload models.SendResults
	if err := json.Unmarshal(message.Value, &payload); err != nil {
		logger.Log.WithError(err).Warn("Dropping unparseable results message")
		return nil
	}
	if payload.ID == "" {
		logger.Log.Warn("Dropping results message without id")
		return nil
	}

	key := CacheKey(payload.ID)
	if err := l.cache.Save(ctx, key, string(message.Value)); err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}

	logger.Log.WithField("key", key).Info("Cached analysis result")
	return nil
}
