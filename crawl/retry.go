package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/storyindex"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// FixedRetryDelays returns the waits between attempts for a fetch made at
// most attempts times with a constant backoff. It returns attempts-1 delays;
// fewer than one attempt is treated as one.
func FixedRetryDelays(attempts int, backoff time.Duration) []time.Duration {
	delays := make([]time.Duration, 0, max(attempts-1, 0))
	for i := 1; i < attempts; i++ {
		delays = append(delays, backoff)
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 2s, 2s.
func DefaultRetryDelays() []time.Duration {
	return FixedRetryDelays(storyindex.DefaultRetryAttempts, storyindex.DefaultRetryBackoff)
}

// FetchWithRetry fetches a URL, retrying up to 3 attempts in total with a
// fixed 2s wait between attempts.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but waits delays[i] before
// attempt i+2, making len(delays)+1 attempts at most. The last error is
// returned when every attempt fails. Context cancellation aborts any wait.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d/%d): %v", url, attempt+2, maxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
