package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps hit timestamps per key in process memory. Entries are
// pruned to the window on every hit and keys that go fully stale are evicted,
// so the table stays bounded by active clients.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	recent := s.hits[key][:0]
	for _, t := range s.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= limit {
		s.hits[key] = recent
		return false, nil
	}

	s.hits[key] = append(recent, now)
	s.evictStale(cutoff, key)
	return true, nil
}

// evictStale drops keys whose every hit fell out of the window. Skips the key
// that was just touched.
func (s *MemoryStore) evictStale(cutoff time.Time, active string) {
	for key, times := range s.hits {
		if key == active {
			continue
		}
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(s.hits, key)
		}
	}
}
