// Package retry implements the bounded retry discipline shared by the
// external provider adapters: a fixed number of attempts, a fixed base
// backoff capped at a maximum, and retries only for transient failures.
package retry

import (
	"context"
	"errors"
	"net"
	"time"
)

const (
	DefaultRetries = 1
	DefaultBase    = 200 * time.Millisecond
	DefaultMax     = 2 * time.Second
)

type Policy struct {
	Retries int           // additional attempts after the first
	Base    time.Duration // backoff before each retry
	Max     time.Duration // backoff cap
}

func (p Policy) normalized() Policy {
	if p.Retries < 0 {
		p.Retries = 0
	}
	if p.Base <= 0 {
		p.Base = DefaultBase
	}
	if p.Max <= 0 {
		p.Max = DefaultMax
	}
	if p.Base > p.Max {
		p.Base = p.Max
	}
	return p
}

// permanent wraps an error the caller has classified as non-retryable.
type permanent struct {
	err error
}

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err as terminal: Do returns it immediately without
// further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

// Do runs fn up to 1+Retries times. Errors wrapped with Permanent stop
// the loop immediately; all other errors are treated as transient.
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	policy = policy.normalized()

	var lastErr error
	for attempt := 0; attempt <= policy.Retries; attempt++ {
		if attempt > 0 {
			backoff := policy.Base * time.Duration(attempt)
			if backoff > policy.Max {
				backoff = policy.Max
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var term permanent
		if errors.As(err, &term) {
			return term.err
		}
		lastErr = err
	}
	return lastErr
}

// TransientStatus reports whether an HTTP status is worth retrying.
func TransientStatus(status int) bool {
	return status >= 500 && status <= 599
}

// TransientNetError reports whether err looks like a timeout, abort, or
// other network-level failure.
func TransientNetError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
