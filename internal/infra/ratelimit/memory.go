// Package ratelimit gates inbound claim-verification traffic with
// fixed, epoch-aligned request windows: every window of length W starts
// at a multiple of W since the epoch, so a caller's budget resets at
// predictable instants and the memory and redis variants agree on
// window boundaries. The Gate wraps a limiter with the service's
// admission policy (per-IP-and-endpoint buckets, fail-open on backend
// failure unless configured closed).
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"claimtrust/internal/domain"
)

const defaultMaxKeys = 10000

// ErrTooManyKeys is returned when the in-memory limiter is tracking its
// maximum number of live buckets and none can be reclaimed.
var ErrTooManyKeys = errors.New("rate limiter key capacity exhausted")

// bucket counts arrivals for one caller key inside one window slot.
// Rejected requests are counted too; they consume no extra budget but
// keep Remaining honest for the headers.
type bucket struct {
	slot int64
	hits int
}

type memoryLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	maxKeys  int
	buckets  map[string]bucket
	lastSlot int64
}

type MemoryConfig struct {
	Limit   int
	Window  time.Duration
	Now     func() time.Time
	MaxKeys int
}

func NewMemoryLimiter(cfg MemoryConfig) domain.RateLimiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = defaultMaxKeys
	}
	return &memoryLimiter{
		limit:   cfg.Limit,
		window:  cfg.Window,
		now:     cfg.Now,
		maxKeys: cfg.MaxKeys,
		buckets: make(map[string]bucket),
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string) (domain.RateLimitDecision, error) {
	if m.limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: m.limit, Remaining: m.limit}, nil
	}
	now := m.now()
	slot, resetAt := windowSlot(now, m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Crossing a window boundary retires every bucket from earlier
	// slots in one sweep.
	if slot != m.lastSlot {
		m.sweep(slot)
		m.lastSlot = slot
	}

	b, ok := m.buckets[key]
	if !ok && len(m.buckets) >= m.maxKeys {
		return domain.RateLimitDecision{}, ErrTooManyKeys
	}
	if b.slot != slot {
		b = bucket{slot: slot}
	}
	b.hits++
	m.buckets[key] = b

	return admission(m.limit, b.hits, resetAt, now), nil
}

func (m *memoryLimiter) sweep(currentSlot int64) {
	for key, b := range m.buckets {
		if b.slot < currentSlot {
			delete(m.buckets, key)
		}
	}
}

// windowSlot maps an instant to its epoch-aligned window index and the
// instant that window ends.
func windowSlot(now time.Time, window time.Duration) (int64, time.Time) {
	millis := window.Milliseconds()
	if millis <= 0 {
		millis = 1000
	}
	slot := now.UnixMilli() / millis
	return slot, time.UnixMilli((slot + 1) * millis)
}

// admission turns a window hit count into the decision both limiter
// variants report.
func admission(limit, hits int, resetAt, now time.Time) domain.RateLimitDecision {
	d := domain.RateLimitDecision{
		Allowed:   hits <= limit,
		Limit:     limit,
		Remaining: limit - hits,
		ResetAt:   resetAt,
	}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		d.RetryAfter = resetAt.Sub(now)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d
}
