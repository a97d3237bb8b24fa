package emiascache

import (
	"context"
	"encoding/json"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
)

// Service is the lookup side of the cache: it deserializes whatever the
// listener stored.
type Service struct {
	cache Cache
}

func NewService(cache Cache) *Service {
	return &Service{cache: cache}
}

// GetByID returns nil when the key is absent, expired, or holds bytes that no
// longer parse; a corrupt entry is logged and treated as a miss.
func (s *Service) GetByID(ctx context.Context, id string) (*models.SendResults, error) {
	raw, err := s.cache.Get(ctx, CacheKey(id))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var payload models.SendResults
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Log.WithError(err).WithField("id", id).Error("Cached payload unparseable")
		return nil, nil
	}
	return &payload, nil
}
