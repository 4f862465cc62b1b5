package ports

import (
	"context"
	"io"
)

// ObjectStorage uploads binary content to a hosted bucket.
type ObjectStorage interface {
	// Put stores size bytes from r under key and returns the public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Ping(ctx context.Context) error
}

// IdempotencyGuard remembers which request an Idempotency-Key produced.
type IdempotencyGuard interface {
	// Reserve claims key. When the key was already committed it returns the
	// stored request id and reserved=false.
	Reserve(ctx context.Context, key string) (existingID string, reserved bool, err error)
	Commit(ctx context.Context, key, requestID string) error
	Release(ctx context.Context, key string) error
}
