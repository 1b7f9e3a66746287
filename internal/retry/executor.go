package retry

import (
	"context"
	"time"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// Executor runs an operation repeatedly until it succeeds, fails with a
// fatal error, or exhausts the strategy's retry budget.
//
// An Executor is safe for concurrent use. WithOnRetry returns a new
// instance with the callback set, leaving the receiver unchanged, so
// callers can derive per-use configurations without synchronization.
type Executor struct {
	classifier tvload.ErrorClassifier
	strategy   tvload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier tvload.ErrorClassifier, strategy tvload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// WithOnRetry returns a copy of the executor that invokes callback before
// each retry wait. attempt is zero-indexed and counts retries, not total
// invocations. The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation, retrying transient failures with backoff until
// it succeeds or the strategy's MaxAttempts retries are spent. Fatal
// errors and context cancellation end the run immediately. The error from
// the last attempt is returned unwrapped.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxRetries := e.strategy.MaxAttempts()

	for attempt := 0; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}
		if !e.classifier.IsTransient(err) {
			return err
		}
		// maxRetries < 0 means retry until the context gives up.
		if maxRetries >= 0 && attempt >= maxRetries {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
