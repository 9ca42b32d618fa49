package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryConfig{
		Limit:  3,
		Window: time.Minute,
		Now:    func() time.Time { return now },
	})

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(context.Background(), "k")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if decision.Remaining != 3-(i+1) {
			t.Fatalf("remaining = %d, want %d", decision.Remaining, 3-(i+1))
		}
	}

	decision, err := limiter.Allow(context.Background(), "k")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("fourth request should be denied")
	}
	if decision.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", decision.Remaining)
	}
	if decision.RetryAfter <= 0 {
		t.Fatalf("denied decision must carry RetryAfter, got %v", decision.RetryAfter)
	}
}

func TestMemoryLimiter_WindowsAreEpochAligned(t *testing.T) {
	// 10:00:45 sits in the window [10:00:00, 10:01:00): fifteen seconds
	// of budget remain, not a full minute from the first request.
	current := time.Date(2026, 3, 1, 10, 0, 45, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryConfig{
		Limit:  1,
		Window: time.Minute,
		Now:    func() time.Time { return current },
	})

	first, _ := limiter.Allow(context.Background(), "k")
	wantReset := time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC)
	if !first.ResetAt.Equal(wantReset) {
		t.Fatalf("ResetAt = %v, want %v", first.ResetAt, wantReset)
	}

	denied, _ := limiter.Allow(context.Background(), "k")
	if denied.Allowed {
		t.Fatalf("second request should be denied")
	}
	if denied.RetryAfter != 15*time.Second {
		t.Fatalf("RetryAfter = %v, want 15s", denied.RetryAfter)
	}

	// Crossing the boundary starts a fresh window.
	current = time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC)
	fresh, err := limiter.Allow(context.Background(), "k")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !fresh.Allowed {
		t.Fatalf("new window should allow again")
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryConfig{Limit: 1, Window: time.Minute})
	limiter.Allow(context.Background(), "a")
	if d, _ := limiter.Allow(context.Background(), "a"); d.Allowed {
		t.Fatalf("key a should be exhausted")
	}
	if d, _ := limiter.Allow(context.Background(), "b"); !d.Allowed {
		t.Fatalf("key b must not share key a's window")
	}
}

func TestMemoryLimiter_NonPositiveLimitDisables(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryConfig{Limit: 0, Window: time.Minute})
	for i := 0; i < 10; i++ {
		d, err := limiter.Allow(context.Background(), "k")
		if err != nil || !d.Allowed {
			t.Fatalf("limit 0 must always allow, got %+v err %v", d, err)
		}
	}
}

func TestMemoryLimiter_SweepReclaimsCapacityAtBoundary(t *testing.T) {
	current := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryConfig{
		Limit:   1,
		Window:  time.Minute,
		Now:     func() time.Time { return current },
		MaxKeys: 2,
	})
	limiter.Allow(context.Background(), "a")
	limiter.Allow(context.Background(), "b")

	// At capacity with live buckets: a new key errors.
	if _, err := limiter.Allow(context.Background(), "c"); !errors.Is(err, ErrTooManyKeys) {
		t.Fatalf("expected ErrTooManyKeys, got %v", err)
	}

	// The boundary sweep retires both buckets and makes room.
	current = current.Add(time.Minute)
	if d, err := limiter.Allow(context.Background(), "c"); err != nil || !d.Allowed {
		t.Fatalf("expected allow after boundary sweep, got %+v err %v", d, err)
	}
}

func TestWindowSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 45, 0, time.UTC)
	slot, resetAt := windowSlot(now, time.Minute)
	sameSlot, _ := windowSlot(now.Add(14*time.Second), time.Minute)
	if slot != sameSlot {
		t.Fatalf("instants inside one window must share a slot")
	}
	nextSlot, _ := windowSlot(now.Add(15*time.Second), time.Minute)
	if nextSlot != slot+1 {
		t.Fatalf("boundary crossing must advance the slot")
	}
	if want := time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC); !resetAt.Equal(want) {
		t.Fatalf("resetAt = %v, want %v", resetAt, want)
	}
}
