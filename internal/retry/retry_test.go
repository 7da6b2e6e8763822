package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDo_SucceedsFirstTry verifies that Do does not sleep or retry when fn succeeds immediately.
func TestDo_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), DefaultPolicy(), AlwaysRetry, "noop", func(_ context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// TestDo_RetriesUntilSuccess verifies that Do retries a failing operation up to MaxAttempts.
func TestDo_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	policy := Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}

	calls := 0
	err := Do(context.Background(), policy, AlwaysRetry, "flaky", func(_ context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// TestDo_StopsOnNonRetryableError verifies that Do does not retry when classify returns false.
func TestDo_StopsOnNonRetryableError(t *testing.T) {
	t.Parallel()

	calls := 0
	sentinel := errors.New("fatal")

	err := Do(context.Background(), DefaultPolicy(), func(error) bool { return false }, "fatal-op", func(_ context.Context) error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
}

// TestDo_ExhaustsAttempts verifies that Do gives up after MaxAttempts and wraps the last error.
func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	policy := Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}

	calls := 0
	sentinel := errors.New("always fails")

	err := Do(context.Background(), policy, AlwaysRetry, "always-failing", func(_ context.Context) error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
}

// TestDo_RespectsContextCancellation verifies that Do aborts early when ctx is cancelled.
func TestDo_RespectsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, DefaultPolicy(), AlwaysRetry, "cancelled-op", func(_ context.Context) error {
		t.Fatal("fn should not be called when context is already cancelled")
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
