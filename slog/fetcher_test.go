package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/storyindex/mock"
	storyslog "github.com/fwojciec/storyindex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := storyslog.NewLoggingFetcher(inner, newDebugLogger(&buf))
		html, err := fetcher.Fetch(context.Background(), "https://example.com/p/story")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/p/story")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := storyslog.NewLoggingFetcher(inner, newDebugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com/p/story")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "err=\"network error\"")
	})

	t.Run("successful fetches are hidden at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "ok", nil
			},
		}

		_, err := storyslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com/p/story")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
