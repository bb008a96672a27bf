package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers Idempotency-Key values sent with create requests.
// Key format: idem:create:<email>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. Claims expire after a day.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Claim atomically records scope+key and reports whether this was the first time.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKey(scope, key), "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so the same key can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idem:create:%s:%s", scope, key)
}
