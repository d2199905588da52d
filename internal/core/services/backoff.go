package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// retryPolicy bounds how stubbornly upstream calls are retried.
// Transient failures consume attempts with exponential backoff between
// them; rate-limit pauses consume wall-clock budget instead, so a long
// reset wait never burns the retry attempts.
type retryPolicy struct {
	// maxAttempts is the total number of tries for transient failures.
	maxAttempts int

	// baseDelay is the first backoff step; it doubles per attempt.
	baseDelay time.Duration

	// maxRateWait caps the total time one operation may spend waiting
	// out rate limits before the run gives up.
	maxRateWait time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
		maxRateWait: 5 * time.Minute,
	}
}

// run invokes fn until it succeeds, fails fatally, or a budget runs
// out. After a rate-limit error the next try runs under a deadline
// covering the remaining wait budget, so a distant reset surfaces as
// domain.ErrBudgetExhausted instead of an unbounded sleep.
func (p retryPolicy) run(ctx context.Context, op string, fn func(context.Context) error) error {
	var attempts int
	var waitStart time.Time

	for {
		callCtx := ctx
		var cancel context.CancelFunc
		if !waitStart.IsZero() {
			remaining := p.maxRateWait - time.Since(waitStart)
			if remaining <= 0 {
				return fmt.Errorf("%s: %w", op, domain.ErrBudgetExhausted)
			}
			callCtx, cancel = context.WithTimeout(ctx, remaining)
		}

		err := fn(callCtx)
		if cancel != nil {
			cancel()
		}

		switch {
		case err == nil:
			return nil

		case errors.Is(err, domain.ErrRateLimited):
			if waitStart.IsZero() {
				waitStart = time.Now()
			}
			logger.Info("Rate limited during %s, waiting for budget reset", op)

		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil && !waitStart.IsZero():
			// Our own wait deadline fired, not the caller's context.
			return fmt.Errorf("%s: %w", op, domain.ErrBudgetExhausted)

		case errors.Is(err, domain.ErrTransient):
			attempts++
			if attempts >= p.maxAttempts {
				return fmt.Errorf("%s: %w", op, err)
			}
			delay := p.baseDelay << (attempts - 1)
			logger.Debug("Transient failure during %s (attempt %d/%d), backing off %s: %v",
				op, attempts, p.maxAttempts, delay, err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}

		default:
			return err
		}
	}
}
