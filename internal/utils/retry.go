package utils

import (
	"context"
	"time"
)

// Retry defaults used at the match-store boundary. Attempts stay small on
// purpose: exhausted retries must surface as per-pair errors in batch
// summaries instead of stalling the whole run.
const (
	RetryAttempts     = 3
	RetryInitialDelay = 100 * time.Millisecond
)

// Retry runs fn up to attempts times, doubling the delay between attempts
// and honoring context cancellation. The last error is returned once the
// attempt budget is spent. Context errors are never retried.
func Retry(ctx context.Context, attempts int, initialDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := initialDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
