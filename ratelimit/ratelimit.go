package ratelimit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Store counts events per key inside a fixed window. Implementations must be
// safe for concurrent use. The memory store is fine for one server process;
// point at the redis store when running more than one instance.
type Store interface {
	// Incr bumps the counter for key in the window containing now and
	// returns the new value. The counter resets at window boundaries.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter is a fixed-window counter for one scope (auth, api, generate...).
// Counters are independent per identity: one client hammering the API does
// not consume anyone else's budget.
type Limiter struct {
	Scope  string
	Window time.Duration
	Max    int64
	store  Store
}

func New(scope string, window time.Duration, max int64, store Store) *Limiter {
	return &Limiter{Scope: scope, Window: window, Max: max, store: store}
}

// Allow admits or rejects one event for identity. Exactly Max events pass per
// window; the Max+1-th is rejected until the window rolls over. A store error
// fails open with a log line — admission control protects the service, it is
// not an entitlement check, so we prefer serving traffic over blocking on a
// broken counter backend.
func (l *Limiter) Allow(ctx context.Context, identity string) bool {
	key := fmt.Sprintf("rl:%s:%s", l.Scope, identity)
	n, err := l.store.Incr(ctx, key, l.Window)
	if err != nil {
		log.Printf("rate limiter %s: counter store error, admitting: %v", l.Scope, err)
		return true
	}
	return n <= l.Max
}

type windowEntry struct {
	count   int64
	expires time.Time
}

// MemoryStore keeps counters in a process-local map. Expired windows are
// purged lazily on write so the map does not grow without bound.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	lastGC  time.Time
	now     func() time.Time // swapped in tests
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// Window index pins the key to one fixed window; counters from an
	// elapsed window are simply never touched again.
	windowKey := fmt.Sprintf("%s:%d", key, now.UnixNano()/int64(window))

	e, ok := s.entries[windowKey]
	if !ok {
		e = &windowEntry{expires: now.Add(window)}
		s.entries[windowKey] = e
	}
	e.count++

	if now.Sub(s.lastGC) > time.Minute {
		for k, old := range s.entries {
			if now.After(old.expires) {
				delete(s.entries, k)
			}
		}
		s.lastGC = now
	}
	return e.count, nil
}
