package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// WithBackoff runs fn up to maxAttempts times with exponential backoff
// and jitter between attempts. retriable decides whether a failure is
// worth another attempt; nil retries every failure.
func WithBackoff[T any](
	ctx context.Context,
	maxAttempts int,
	baseDelay time.Duration,
	retriable func(error) bool,
	fn func() (T, error),
) (T, error) {
	var zero T
	if maxAttempts <= 0 {
		return zero, fmt.Errorf("maxAttempts must be > 0, got %d", maxAttempts)
	}
	var lastErr error

	for i := 0; i < maxAttempts; i++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if retriable != nil && !retriable(err) {
			return zero, err
		}

		if i < maxAttempts-1 {
			jitter := time.Duration(rand.Int63n(int64(baseDelay))) //nolint:gosec // jitter doesn't need crypto rand
			delay := time.Duration(math.Pow(2, float64(i)))*baseDelay + jitter
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
