package seoflow

import (
	"context"
	"time"
)

// Policy is a reusable bounded-retry policy with exponential backoff
// and a retryable-error predicate.
type Policy struct {
	// MaxAttempts is the maximum number of attempts, including the
	// first one.
	MaxAttempts int

	// BackoffBase is the delay before the first retry.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the delay on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration

	// Retryable decides whether an error is worth another attempt.
	// When nil, IsTransient is used.
	Retryable func(error) bool
}

// DefaultPolicy returns retry defaults for the research phase.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// Do runs op until it succeeds, the error is not retryable, attempts
// run out, or ctx is cancelled. The delay between attempts waits on
// the context rather than blocking, so concurrently scheduled
// orchestrators keep making progress.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BackoffBase
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.BackoffMultiplier)
		if p.MaxBackoff > 0 && delay > p.MaxBackoff {
			delay = p.MaxBackoff
		}
	}
	return lastErr
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
