// Package retry provides a generic exponential-backoff retry helper for
// calls to flaky external systems; the MusicBrainz catalog client is its
// caller.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy configures exponential backoff retry behavior.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first. Zero defaults to 1.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between subsequent retries.
	MaxBackoff time.Duration

	// Jitter adds up to this much random extra delay to each backoff, to avoid
	// thundering-herd retries across concurrent workers.
	Jitter time.Duration
}

// DefaultPolicy is a reasonable default for network calls to external services.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     30 * time.Second,
		Jitter:         250 * time.Millisecond,
	}
}

// IsRetryable classifies whether an error is worth retrying. Callers may pass
// their own in place of this default via Do's variadic classifier argument.
type IsRetryable func(error) bool

// AlwaysRetry treats every non-nil error as retryable.
func AlwaysRetry(err error) bool {
	return err != nil
}

// Do runs fn, retrying with exponential backoff according to policy while
// classify(err) reports true, up to MaxAttempts. It returns the last error
// encountered, wrapped with attempt context, or nil on success. It aborts
// early if ctx is cancelled.
func Do(ctx context.Context, policy Policy, classify IsRetryable, operation string, fn func(ctx context.Context) error) error {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}

	if classify == nil {
		classify = AlwaysRetry
	}

	backoff := policy.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: cancelled before attempt %d: %w", operation, attempt, err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !classify(lastErr) || attempt == policy.MaxAttempts {
			break
		}

		delay := backoff
		if policy.Jitter > 0 {
			delay += time.Duration(rand.Int64N(int64(policy.Jitter))) //nolint:gosec // math/rand/v2 is secure.
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: cancelled after %d attempts: %w", operation, attempt, ctx.Err())
		case <-time.After(delay):
		}

		if policy.MaxBackoff > 0 {
			backoff = min(backoff*2, policy.MaxBackoff)
		} else {
			backoff *= 2
		}
	}

	return fmt.Errorf("%s: failed after %d attempt(s): %w", operation, policy.MaxAttempts, lastErr)
}
