package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a single-process Store, used when no Redis is configured.
type MemoryStore struct {
	mu     sync.Mutex
	events map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]time.Time)}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration, now time.Time) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := trim(s.events[key], now.Add(-window))
	if len(events) >= limit {
		s.events[key] = events
		return Decision{
			Allowed:    false,
			Count:      len(events),
			RetryAfter: events[0].Add(window).Sub(now),
		}, nil
	}

	events = append(events, now)
	s.events[key] = events
	return Decision{Allowed: true, Count: len(events)}, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.events, key)
	s.mu.Unlock()
	return nil
}

// Cleanup drops keys with no events newer than now-window. Run it
// periodically with the longest window in use.
func (s *MemoryStore) Cleanup(now time.Time, window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, events := range s.events {
		if kept := trim(events, now.Add(-window)); len(kept) == 0 {
			delete(s.events, key)
		} else {
			s.events[key] = kept
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval, window time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Cleanup(now, window)
		}
	}
}

// trim drops events at or before cutoff. events is sorted ascending.
func trim(events []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(events) && !events[i].After(cutoff) {
		i++
	}
	return events[i:]
}
