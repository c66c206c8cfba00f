// Package ratelimit implements fixed-window rate limiting keyed by client
// identifier. The limiter is constructed with its record store so the same
// logic runs against the in-process map or a shared Redis instance.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Record tracks accepted requests for one client identifier within the
// current window. Count never exceeds the limiter's maximum while the
// window is open; once ResetAt passes the record is replaced.
type Record struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"reset_at"`
}

// Store holds rate-limit records keyed by client identifier.
type Store interface {
	Get(key string) (Record, bool)
	Put(key string, rec Record)
	Len() int
	DeleteExpired(now time.Time)
}

// Decision is the outcome of a single limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter int // seconds until the window resets, set when denied
	ResetAt    time.Time
}

// pruneThreshold is the table size at which expired records are lazily
// swept before the next lookup.
const pruneThreshold = 10000

// Limiter enforces a fixed-window limit of Max requests per Window.
type Limiter struct {
	store  Store
	max    int
	window time.Duration

	mu  sync.Mutex
	now func() time.Time
}

// New creates a limiter backed by the given store.
func New(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Max returns the configured per-window maximum.
func (l *Limiter) Max() int { return l.max }

// Allow records one request for key and reports whether it is within the
// limit. The read-check-increment sequence runs under the limiter mutex so
// concurrent requests for the same key cannot interleave.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if l.store.Len() > pruneThreshold {
		l.store.DeleteExpired(now)
	}

	rec, ok := l.store.Get(key)
	if !ok || !now.Before(rec.ResetAt) {
		rec = Record{Count: 1, ResetAt: now.Add(l.window)}
		l.store.Put(key, rec)
		return Decision{Allowed: true, Remaining: l.max - 1, ResetAt: rec.ResetAt}
	}

	if rec.Count >= l.max {
		retry := int(math.Ceil(rec.ResetAt.Sub(now).Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Decision{RetryAfter: retry, ResetAt: rec.ResetAt}
	}

	rec.Count++
	l.store.Put(key, rec)
	return Decision{Allowed: true, Remaining: l.max - rec.Count, ResetAt: rec.ResetAt}
}

// MemoryStore keeps records in an in-process map. Expired entries are only
// removed by DeleteExpired, which the limiter invokes lazily when the table
// grows large.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get returns the record for key, if present.
func (s *MemoryStore) Get(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Put stores the record for key.
func (s *MemoryStore) Put(key string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

// Len returns the number of tracked identifiers.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// DeleteExpired removes records whose window has already elapsed.
func (s *MemoryStore) DeleteExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, rec := range s.records {
		if !now.Before(rec.ResetAt) {
			delete(s.records, key)
		}
	}
}
