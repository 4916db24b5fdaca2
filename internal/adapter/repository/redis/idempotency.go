package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingMarker reserves a key while the original request is still in flight.
const pendingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. Allocation
// and income POSTs carry an Idempotency-Key header so a retried request
// replays the cached response instead of double-charging an expense.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "caja:idem:",
	}
}

// CheckAndSet returns the cached response for key if one exists. Otherwise it
// claims the key, either with the given response or with a pending marker
// when response is nil. Returns (seen, cached, error).
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	cached, err := s.client.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		return true, cached, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, fullKey, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !claimed {
		// Lost the race; surface whatever the winner stored.
		cached, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, cached, nil
	}

	return false, nil, nil
}

// Update replaces the pending marker with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
