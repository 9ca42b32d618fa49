package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"

	"claimtrust/internal/domain"
)

// ErrUnavailable reports a limiter backend failure under a fail-closed
// policy.
var ErrUnavailable = errors.New("rate limiter unavailable")

// Gate is the service's admission policy over a limiter: requests are
// bucketed by caller IP and endpoint, and a backend failure admits the
// request unless the deployment opted into fail-closed.
type Gate struct {
	limiter    domain.RateLimiter
	failClosed bool
}

func NewGate(limiter domain.RateLimiter, failClosed bool) *Gate {
	return &Gate{limiter: limiter, failClosed: failClosed}
}

// Admit checks one request. A nil gate admits everything, so callers
// without rate limiting configured need no special casing.
func (g *Gate) Admit(ctx context.Context, clientIP, endpoint string) (domain.RateLimitDecision, error) {
	if g == nil || g.limiter == nil {
		return domain.RateLimitDecision{Allowed: true}, nil
	}
	key := "ip:" + clientIP + ":endpoint:" + endpoint
	decision, err := g.limiter.Allow(ctx, key)
	if err != nil {
		if g.failClosed {
			return domain.RateLimitDecision{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		log.Printf("rate limiter failed open for %s: %v", endpoint, err)
		return domain.RateLimitDecision{Allowed: true}, nil
	}
	return decision, nil
}
