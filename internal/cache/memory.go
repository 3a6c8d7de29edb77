package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	tags      []string
}

// MemoryStore is an in-process Store. Expiry is checked lazily on Get;
// invalidation walks the tag index.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	byTag   map[string]map[string]struct{}
	now     func() time.Time
}

// NewMemoryStore returns an empty in-process cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		byTag:   make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if entry.expiresAt.IsZero() || !s.now().After(entry.expiresAt) {
		return entry.value, true, nil
	}

	// Re-check under the write lock: a Set may have refreshed the key between
	// the read lock and here, and its entry must not be dropped.
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if current.expiresAt.IsZero() || !s.now().After(current.expiresAt) {
		return current.value, true, nil
	}
	s.drop(key)
	return nil, false, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drop(key)
	entry := memoryEntry{value: value, tags: tags}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	for _, tag := range tags {
		if s.byTag[tag] == nil {
			s.byTag[tag] = make(map[string]struct{})
		}
		s.byTag[tag][key] = struct{}{}
	}
	return nil
}

// Invalidate implements Store.
func (s *MemoryStore) Invalidate(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.byTag[tag] {
		s.drop(key)
	}
	delete(s.byTag, tag)
	return nil
}

// drop removes key and its tag index entries. Callers hold the write lock.
func (s *MemoryStore) drop(key string) {
	entry, ok := s.entries[key]
	if !ok {
		return
	}
	for _, tag := range entry.tags {
		delete(s.byTag[tag], key)
		if len(s.byTag[tag]) == 0 {
			delete(s.byTag, tag)
		}
	}
	delete(s.entries, key)
}
