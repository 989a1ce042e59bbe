package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storyindex"
)

// Ensure LoggingFetcher implements storyindex.Fetcher.
var _ storyindex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Successful fetches are logged
// at debug level, failures at warn level.
type LoggingFetcher struct {
	next   storyindex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next storyindex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		logResult(ctx, f.logger, err, slog.LevelDebug, "fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
