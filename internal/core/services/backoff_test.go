package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// scriptedFn returns the queued errors in order, then nil.
func scriptedFn(errs ...error) (func(context.Context) error, *int) {
	calls := new(int)
	return func(context.Context) error {
		idx := *calls
		*calls++
		if idx < len(errs) {
			return errs[idx]
		}
		return nil
	}, calls
}

func TestRetryPolicy_SucceedsFirstTry(t *testing.T) {
	fn, calls := scriptedFn()

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestRetryPolicy_TransientBackoffThenSuccess(t *testing.T) {
	fn, calls := scriptedFn(domain.ErrTransient, domain.ErrTransient)

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.NoError(t, err)
	assert.Equal(t, 3, *calls)
}

func TestRetryPolicy_TransientExhausted(t *testing.T) {
	fn, calls := scriptedFn(domain.ErrTransient, domain.ErrTransient, domain.ErrTransient)

	err := testRetryPolicy().run(context.Background(), "fetch widget", fn)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Contains(t, err.Error(), "fetch widget")
	assert.Equal(t, 3, *calls)
}

func TestRetryPolicy_FatalNotRetried(t *testing.T) {
	fn, calls := scriptedFn(domain.ErrNotFound)

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, *calls)
}

func TestRetryPolicy_RateLimitThenSuccess(t *testing.T) {
	fn, calls := scriptedFn(domain.ErrRateLimited)

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestRetryPolicy_EmptyWaitBudget(t *testing.T) {
	fn, calls := scriptedFn(domain.ErrRateLimited, domain.ErrRateLimited)

	policy := testRetryPolicy()
	policy.maxRateWait = 0
	err := policy.run(context.Background(), "op", fn)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
	assert.Equal(t, 1, *calls)
}

func TestRetryPolicy_DeadlineAfterRateLimitIsBudgetExhausted(t *testing.T) {
	// A rate-limit pause followed by the bounded wait expiring, the
	// shape a limiter wait produces when the reset is too far out
	fn, calls := scriptedFn(
		domain.ErrRateLimited,
		fmt.Errorf("rate limit wait: %w", context.DeadlineExceeded),
	)

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
	assert.Equal(t, 2, *calls)
}

func TestRetryPolicy_RateLimitWaitRunsUnderDeadline(t *testing.T) {
	var sawDeadline bool
	calls := 0
	fn := func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return domain.ErrRateLimited
		}
		_, sawDeadline = ctx.Deadline()
		return nil
	}

	err := testRetryPolicy().run(context.Background(), "op", fn)

	require.NoError(t, err)
	assert.True(t, sawDeadline, "the retry after a rate limit must be bounded by the wait budget")
}

func TestRetryPolicy_CanceledDuringBackoff(t *testing.T) {
	fn, _ := scriptedFn(domain.ErrTransient, domain.ErrTransient)

	policy := testRetryPolicy()
	policy.baseDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := policy.run(ctx, "op", fn)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Less(t, time.Since(start), 500*time.Millisecond, "cancellation must cut the backoff short")
}

func TestRetryPolicy_CallerDeadlineIsNotBudgetExhausted(t *testing.T) {
	fn, _ := scriptedFn(context.DeadlineExceeded)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	err := testRetryPolicy().run(ctx, "op", fn)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBudgetExhausted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
