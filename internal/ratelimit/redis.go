package ratelimit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOpTimeout bounds individual Redis calls so a slow instance cannot
// stall request handling.
const redisOpTimeout = 2 * time.Second

// RedisStore keeps rate-limit records in Redis so multiple instances share
// one window per client identifier. Records carry a TTL matching their
// window, so Len and DeleteExpired have nothing to do.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed record store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

// Get returns the record for key, if present. Redis errors are treated as
// a miss: the limiter then opens a fresh window rather than failing the
// request.
func (s *RedisStore) Get(key string) (Record, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Put stores the record with a TTL lasting until shortly after its window
// closes.
func (s *RedisStore) Put(key string, rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	ttl := time.Until(rec.ResetAt) + time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	s.client.Set(ctx, s.key(key), data, ttl)
}

// Len always reports zero: TTLs bound the key space, so the limiter never
// needs to trigger a sweep.
func (s *RedisStore) Len() int { return 0 }

// DeleteExpired is a no-op; Redis expires records itself.
func (s *RedisStore) DeleteExpired(time.Time) {}
