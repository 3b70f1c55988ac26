// Package ratelimit implements a fixed-window request quota keyed by caller
// identity. Windows are anchored at the first request for a key, not
// calendar-aligned. The limiter is an abuse-mitigation control, not a
// correctness-critical one: counters may reset on restart.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports whether a request fits in the current window and when the
// window resets.
type Result struct {
	Success bool
	Reset   time.Time
}

// Store increments and checks a counter for a key within a fixed window.
type Store interface {
	Check(ctx context.Context, key string) (Result, error)
}

type memorySlot struct {
	count   int
	resetAt time.Time
}

// MemoryStore is an in-process fixed-window counter. Suitable for single
// instance deployments and local development.
type MemoryStore struct {
	mu     sync.Mutex
	slots  map[string]*memorySlot
	limit  int
	window time.Duration
}

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		slots:  make(map[string]*memorySlot),
		limit:  limit,
		window: window,
	}
}

func (s *MemoryStore) Check(_ context.Context, key string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	slot, ok := s.slots[key]
	if !ok || now.After(slot.resetAt) {
		s.slots[key] = &memorySlot{count: 1, resetAt: now.Add(s.window)}
		return Result{Success: true, Reset: now.Add(s.window)}, nil
	}
	if slot.count >= s.limit {
		return Result{Success: false, Reset: slot.resetAt}, nil
	}
	slot.count++
	return Result{Success: true, Reset: slot.resetAt}, nil
}

// RedisStore backs the window counter with a shared Redis instance so that
// multiple API instances share quota state.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

func (s *RedisStore) Check(ctx context.Context, key string) (Result, error) {
	count, err := s.client.Incr(ctx, "rl:"+key).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		// First request anchors the window
		if err := s.client.Expire(ctx, "rl:"+key, s.window).Err(); err != nil {
			return Result{}, err
		}
	}

	ttl, err := s.client.TTL(ctx, "rl:"+key).Result()
	if err != nil || ttl < 0 {
		ttl = s.window
	}
	reset := time.Now().Add(ttl)

	if count > int64(s.limit) {
		return Result{Success: false, Reset: reset}, nil
	}
	return Result{Success: true, Reset: reset}, nil
}
