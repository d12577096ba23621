// Package ratelimit provides sliding-window admission control keyed by
// caller identity. The window state lives behind a Store so a single
// instance can use the in-process map while multi-instance deployments plug
// in a shared counter store.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time; injected so tests can drive the window.
type Clock func() time.Time

// Store holds per-key admission timestamps. Take must atomically check the
// count within the trailing window and record the new admission only when
// under the limit; two concurrent calls for the same key must not both be
// admitted past the cap.
type Store interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error)
}

// Limiter applies one limit/window pair. Distinct endpoints use distinct
// limiters and namespaced keys, even for the same caller.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    Clock
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the limiter's time source.
func WithClock(clock Clock) Option {
	return func(l *Limiter) {
		l.now = clock
	}
}

// New creates a limiter over the given store.
func New(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow admits the request if fewer than limit admissions were recorded for
// key within the trailing window, recording the admission. Rejections are
// not recorded.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.store.Take(ctx, key, l.limit, l.window, l.now())
}

// MemoryStore is the in-process Store. Per-process only: in a multi-process
// deployment it bounds each process separately, which is a documented
// limitation of this store, not of the limiter.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string][]time.Time)}
}

// Take implements Store. The single mutex serializes check-and-record across
// all keys, which is sufficient at this request volume.
func (s *MemoryStore) Take(_ context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)
	stamps := s.buckets[key]

	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit {
		s.buckets[key] = kept
		return false, nil
	}

	s.buckets[key] = append(kept, now)
	return true, nil
}
