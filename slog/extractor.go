package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storyindex"
)

// Ensure LoggingExtractor implements storyindex.Extractor.
var _ storyindex.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   storyindex.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next storyindex.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the fields found.
func (e *LoggingExtractor) Extract(html string) (article *storyindex.Article, err error) {
	defer func(begin time.Time) {
		args := []any{"bytes", len(html), "duration", time.Since(begin)}
		if article != nil {
			args = append(args,
				"title", article.Title,
				"paragraphs", len(article.Content),
				"tags", len(article.Tags),
			)
		}
		args = append(args, "err", err)
		logResult(context.Background(), e.logger, err, slog.LevelDebug, "extract", args...)
	}(time.Now())
	return e.next.Extract(html)
}
