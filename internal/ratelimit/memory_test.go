package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreWindow(t *testing.T) {
	store := NewMemoryStore()
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	window := 5 * time.Minute

	for i := 0; i < 5; i++ {
		ok, err := store.Hit(ctx, "1.2.3.4", window, 5)
		if err != nil || !ok {
			t.Fatalf("hit %d: expected allowed, got ok=%v err=%v", i+1, ok, err)
		}
	}

	ok, err := store.Hit(ctx, "1.2.3.4", window, 5)
	if err != nil || ok {
		t.Fatalf("6th hit: expected rejected, got ok=%v err=%v", ok, err)
	}

	// A different client is unaffected.
	ok, _ = store.Hit(ctx, "5.6.7.8", window, 5)
	if !ok {
		t.Fatal("other key must be allowed")
	}

	// After the window elapses the original client is allowed again.
	current = current.Add(window + time.Second)
	ok, err = store.Hit(ctx, "1.2.3.4", window, 5)
	if err != nil || !ok {
		t.Fatalf("post-window hit: expected allowed, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreEvictsStaleKeys(t *testing.T) {
	store := NewMemoryStore()
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	window := time.Minute

	store.Hit(ctx, "stale", window, 5)
	current = current.Add(2 * time.Minute)
	store.Hit(ctx, "fresh", window, 5)

	store.mu.Lock()
	_, staleKept := store.hits["stale"]
	store.mu.Unlock()
	if staleKept {
		t.Fatal("expected stale key evicted")
	}
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration, int) (bool, error) {
	return false, errors.New("backend down")
}

func TestLimiterFailsOpen(t *testing.T) {
	l := New(failingStore{}, time.Minute, 1)
	if !l.Allow(context.Background(), "1.2.3.4") {
		t.Fatal("limiter must fail open on store errors")
	}
}

func TestLimiterAllow(t *testing.T) {
	l := New(NewMemoryStore(), time.Minute, 2)
	ctx := context.Background()
	if !l.Allow(ctx, "k") || !l.Allow(ctx, "k") {
		t.Fatal("expected first two hits allowed")
	}
	if l.Allow(ctx, "k") {
		t.Fatal("expected third hit rejected")
	}
}
