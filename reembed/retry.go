package reembed

import (
	"context"
	"log/slog"
	"time"
)

// Backoff retries operations with exponential backoff. The delay doubles
// after every failed attempt, starting from BaseDelay.
type Backoff struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Must be > 0.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration
}

// Do runs op until it succeeds, MaxAttempts is exhausted or ctx is done.
// Returns the error of the last attempt when all attempts fail.
func (b Backoff) Do(ctx context.Context, op func() error) error {
	if b.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	delay := b.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = op()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if attempt == b.MaxAttempts {
			break
		}

		slog.Debug("operation failed, will retry",
			"attempt", attempt, "maxAttempts", b.MaxAttempts, "delay", delay, "error", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}
