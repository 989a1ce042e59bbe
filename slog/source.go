package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storyindex"
)

// Ensure LoggingSource implements storyindex.ListingSource.
var _ storyindex.ListingSource = (*LoggingSource)(nil)

// LoggingSource wraps a ListingSource with logging.
type LoggingSource struct {
	next   storyindex.ListingSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next storyindex.ListingSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Name returns the wrapped source's name.
func (s *LoggingSource) Name() string {
	return s.next.Name()
}

// ListURLs delegates to the wrapped source and logs the operation.
// A failing source is logged at warn level.
func (s *LoggingSource) ListURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		logResult(ctx, s.logger, err, slog.LevelInfo, "listing source",
			"source", s.next.Name(),
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListURLs(ctx, baseURL)
}

// Ensure LoggingURLSource implements storyindex.URLSource.
var _ storyindex.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with logging.
type LoggingURLSource struct {
	next   storyindex.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next storyindex.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		logResult(ctx, s.logger, err, slog.LevelInfo, "discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, baseURL)
}
