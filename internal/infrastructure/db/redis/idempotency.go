package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultIdempotencyTTL is how long a committed key replays its request.
	DefaultIdempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed submission can hold a key.
	pendingTTL = time.Minute

	pendingMarker = "-"
)

// IdempotencyGuard maps Idempotency-Key headers to the request they created.
// Key format: idem:<kind>:<key>
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyGuard wraps the given Redis client. A non-positive ttl uses
// DefaultIdempotencyTTL.
func NewIdempotencyGuard(client *redis.Client, ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyGuard{client: client, ttl: ttl}
}

// Reserve claims key with SETNX. If the key exists it returns the committed
// request id, or an empty id while the first submission is still running.
func (g *IdempotencyGuard) Reserve(ctx context.Context, key string) (string, bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), pendingMarker, pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := g.client.Get(ctx, g.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET: treat as in flight, the client retries.
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if val == pendingMarker {
		return "", false, nil
	}
	return val, false, nil
}

// Commit stores the created request id for the full TTL.
func (g *IdempotencyGuard) Commit(ctx context.Context, key, requestID string) error {
	return g.client.Set(ctx, g.key(key), requestID, g.ttl).Err()
}

// Release drops a reservation whose submission failed.
func (g *IdempotencyGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.key(key)).Err()
}

func (g *IdempotencyGuard) key(key string) string {
	return "idem:" + key
}
