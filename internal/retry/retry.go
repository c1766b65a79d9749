// Package retry provides the bounded retry-with-backoff loop shared by the
// connectivity probe and the booking submission flow.
package retry

import (
	"context"
	"errors"
	"time"
)

// Policy controls a retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait after the first failed attempt; each further
	// failure doubles it.
	BaseDelay time.Duration
	// Retryable distinguishes transient errors from terminal ones. A nil
	// predicate retries everything except context cancellation.
	Retryable func(error) bool
}

// Do runs op until it succeeds, a terminal error occurs, the attempt bound
// is reached, or ctx is done. The last error is returned unwrapped so
// callers can classify it.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil {
			if errors.Is(lastErr, context.Canceled) {
				return lastErr
			}
		} else if !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}
		if err := sleep(ctx, p.BaseDelay*(1<<attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
