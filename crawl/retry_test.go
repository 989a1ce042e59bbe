package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/storyindex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, crawl.FixedRetryDelays(3, 2*time.Second))
	assert.Empty(t, crawl.FixedRetryDelays(1, time.Second))
	assert.Empty(t, crawl.FixedRetryDelays(0, time.Second))
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, crawl.DefaultRetryDelays())
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("returns body on first success without waiting", func(t *testing.T) {
		t.Parallel()

		var calls, retries int
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}
		logger := func(string, ...any) { retries++ }

		body, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/p/a", fetch, logger, delays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", body)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, retries)
	})

	t.Run("succeeds on the third attempt after waiting twice", func(t *testing.T) {
		t.Parallel()

		var calls, retries int
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", fmt.Errorf("attempt %d failed", calls)
			}
			return "ok", nil
		}
		logger := func(string, ...any) { retries++ }

		body, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/p/a", fetch, logger, delays)

		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, retries)
	})

	t.Run("returns the last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		var calls, retries int
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", fmt.Errorf("attempt %d failed", calls)
		}
		logger := func(string, ...any) { retries++ }

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/p/a", fetch, logger, delays)

		require.Error(t, err)
		assert.Equal(t, "attempt 3 failed", err.Error())
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, retries, "no wait after the final attempt")
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/p/a", fetch, nil, []time.Duration{time.Hour, time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("makes a single attempt without delays", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/p/a", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
