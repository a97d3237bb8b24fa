package emiascache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces all cached analysis payloads.
const KeyPrefix = "analysis:"

func CacheKey(id string) string {
	return KeyPrefix + id
}

// Cache stores raw payload strings under TTL-bounded keys.
type Cache interface {
	Save(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Repository is the Redis-backed cache. Values expire implicitly after the
// configured number of minutes.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRepository(client *redis.Client, savingMinutes int) *Repository {
	return &Repository{
		client: client,
		ttl:    time.Duration(savingMinutes) * time.Minute,
	}
}

func (r *Repository) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Get returns the raw value, or empty without error when the key is missing
// or already expired.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
