package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(NewMemoryStore(), max, window)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		d := l.Allow("1.2.3.4")
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Allow("1.2.3.4")
	assert.False(t, d.Allowed)
	assert.Equal(t, 60, d.RetryAfter)
}

func TestLimiterDenialDoesNotExtendWindow(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	first := l.Allow("key")
	require.True(t, first.Allowed)

	*now = now.Add(30 * time.Second)
	d := l.Allow("key")
	assert.False(t, d.Allowed)
	assert.Equal(t, 30, d.RetryAfter)
	assert.Equal(t, first.ResetAt, d.ResetAt)
}

func TestLimiterWindowResets(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	l.Allow("key")
	l.Allow("key")
	require.False(t, l.Allow("key").Allowed)

	*now = now.Add(time.Minute)
	d := l.Allow("key")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, now.Add(time.Minute), d.ResetAt)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	require.True(t, l.Allow("1.1.1.1").Allowed)
	require.False(t, l.Allow("1.1.1.1").Allowed)
	assert.True(t, l.Allow("2.2.2.2").Allowed)
}

func TestLimiterRetryAfterMinimumOneSecond(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	l.Allow("key")
	*now = now.Add(time.Minute - time.Millisecond)
	d := l.Allow("key")
	require.False(t, d.Allowed)
	assert.GreaterOrEqual(t, d.RetryAfter, 1)
}

func TestLimiterPrunesExpiredRecords(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, 5, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i <= pruneThreshold; i++ {
		store.Put(fmt.Sprintf("ip-%d", i), Record{Count: 1, ResetAt: now.Add(time.Minute)})
	}
	require.Greater(t, store.Len(), pruneThreshold)

	// All records expire; the next check sweeps them before deciding.
	now = now.Add(2 * time.Minute)
	d := l.Allow("fresh")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()

	s.Put("expired", Record{Count: 3, ResetAt: now.Add(-time.Second)})
	s.Put("live", Record{Count: 1, ResetAt: now.Add(time.Minute)})

	s.DeleteExpired(now)

	_, ok := s.Get("expired")
	assert.False(t, ok)
	rec, ok := s.Get("live")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, 1, s.Len())
}
