package store

import (
	"sync"

	"ttlcache/internal/metrics"
)

// Store is the entry table: a concurrency-safe in-memory key–value map.
//
// Design principles:
// - Single writer (the cache manager), many concurrent readers.
// - Get never inspects expiration; an entry stays visible until the
//   manager's reconciliation pass physically removes it. Readers never
//   block on that pass.
// - TTL bookkeeping lives in the Entry; the Store itself has no clock.
type Store struct {
	mu      sync.RWMutex
	data    map[string]Entry
	metrics *metrics.Registry
}

// NewStore initializes and returns a new Store.
func NewStore(metricsRegistry *metrics.Registry) *Store {
	return &Store{
		data:    make(map[string]Entry),
		metrics: metricsRegistry,
	}
}

// Put inserts or overwrites a key. At most one entry per key exists;
// a second Put replaces the first unconditionally.
func (s *Store) Put(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Inc(metrics.CacheSetsTotal)

	if _, exists := s.data[key]; !exists {
		s.metrics.Inc(metrics.CacheKeysTotal)
	}

	s.data[key] = entry
}

// Get retrieves an entry from the table.
//
// This is a pure read: no expiry check, no mutation. A key whose TTL has
// elapsed but which reconciliation has not yet removed is still returned.
func (s *Store) Get(key string) (Entry, bool) {
	s.metrics.Inc(metrics.CacheGetsTotal)

	s.mu.RLock()
	entry, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		s.metrics.Inc(metrics.CacheMissesTotal)
		return Entry{}, false
	}
	return entry, true
}

// Peek is Get without touching the hit/miss counters. Used by the
// reconciliation pass to validate schedule points against the table.
func (s *Store) Peek(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.data[key]
	return entry, exists
}

// Delete removes a key from the table. Deleting an absent key is a no-op.
// It reports whether an entry was actually removed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}

	delete(s.data, key)
	s.metrics.Inc(metrics.CacheDeletesTotal)
	s.metrics.Add(metrics.CacheKeysTotal, -1)
	return true
}

// Len returns the number of entries currently in the table, including
// due entries that reconciliation has not visited yet.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// List returns a snapshot of all entries not yet due at the given time.
// Used by the demo CLI.
func (s *Store) List(now int64) map[string]Entry {
	result := make(map[string]Entry)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for k, v := range s.data {
		if !v.Due(now) {
			result[k] = v
		}
	}
	return result
}
