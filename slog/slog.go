// Package slog provides logging decorators for the storyindex services.
package slog

import (
	"context"
	"log/slog"
)

// levelFor returns Warn for failed operations and ok otherwise.
func levelFor(err error, ok slog.Level) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return ok
}

// logResult writes a record at the level chosen by levelFor.
func logResult(ctx context.Context, logger *slog.Logger, err error, ok slog.Level, msg string, args ...any) {
	logger.Log(ctx, levelFor(err, ok), msg, args...)
}
