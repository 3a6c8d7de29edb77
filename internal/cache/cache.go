package cache

import (
	"context"
	"time"
)

// Store is a byte cache with tag-based invalidation. A mutation that changes
// server state invalidates the tags covering it, so the next read falls
// through to the source of truth.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tag string) error
}

// Cart and content cache tags.
func CartTag(cartID string) string { return "cart:" + cartID }

const ContentTag = "content"
