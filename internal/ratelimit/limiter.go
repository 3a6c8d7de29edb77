package ratelimit

import (
	"context"
	"time"
)

// Store records request hits per key within a rolling window. Implementations
// must be safe for concurrent use; a shared backend (Redis) makes the limit
// hold across instances, the in-memory store is per process.
type Store interface {
	// Hit records one request for key and reports whether it is within the
	// allowed budget for the window.
	Hit(ctx context.Context, key string, window time.Duration, limit int) (bool, error)
}

// Limiter binds a Store to a fixed window and budget.
type Limiter struct {
	store  Store
	window time.Duration
	limit  int
}

// New creates a Limiter allowing limit hits per window for each key.
func New(store Store, window time.Duration, limit int) *Limiter {
	return &Limiter{store: store, window: window, limit: limit}
}

// Allow records a hit for key and reports whether the request may proceed.
// A store failure fails open: limiting is a safeguard, not a gate worth a 500.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	ok, err := l.store.Hit(ctx, key, l.window, l.limit)
	if err != nil {
		return true
	}
	return ok
}
