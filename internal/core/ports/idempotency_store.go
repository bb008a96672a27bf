package ports

import "context"

// IdempotencyStore records client-supplied idempotency keys.
type IdempotencyStore interface {
	// Claim returns true the first time scope+key is seen and false on replays.
	Claim(ctx context.Context, scope, key string) (bool, error)
	// Release forgets a claim so a failed request can be retried with the same key.
	Release(ctx context.Context, scope, key string) error
}
