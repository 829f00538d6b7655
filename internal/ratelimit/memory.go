package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// memoryStore keeps per-key fixed-window counters for a single process.
// Entries are not persisted; a restart starts every window fresh.
type memoryStore struct {
	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*entry)}
}

func (s *memoryStore) consume(key string, now time.Time, maxRequests int, window time.Duration) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	// drop expired entries at most once per window so distinct keys do not
	// accumulate for the life of the process
	if now.Sub(s.lastSweep) >= window {
		for staleKey, stale := range s.entries {
			if !stale.resetAt.After(now) {
				delete(s.entries, staleKey)
			}
		}
		s.lastSweep = now
	}

	current, ok := s.entries[key]
	if !ok || !current.resetAt.After(now) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(window)}
		return Result{Allowed: true}
	}

	if current.count >= maxRequests {
		retryAfter := int((current.resetAt.Sub(now) + time.Second - 1) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{Allowed: false, RetryAfterSeconds: retryAfter}
	}

	current.count++
	return Result{Allowed: true}
}
