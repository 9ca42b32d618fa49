package domain

import (
	"context"
	"time"
)

// RateLimitDecision reports one admission check. RetryAfter is set only
// when the request was rejected.
type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RateLimiter admits or rejects one request for a caller key. The
// request limit and window length are fixed per limiter at
// construction; every key shares the same policy.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitDecision, error)
}
