// Package slog wraps lorekeep services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lorekeep"
)

// Ensure LoggingCacheService implements lorekeep.CacheService.
var _ lorekeep.CacheService = (*LoggingCacheService)(nil)

// LoggingCacheService wraps a CacheService with debug logging of hits,
// misses and writes. Failures are logged at error level.
type LoggingCacheService struct {
	next   lorekeep.CacheService
	logger *slog.Logger
}

// NewLoggingCacheService creates a new LoggingCacheService.
func NewLoggingCacheService(next lorekeep.CacheService, logger *slog.Logger) *LoggingCacheService {
	return &LoggingCacheService{next: next, logger: logger}
}

// Get delegates to the wrapped service and logs whether the lookup hit.
func (s *LoggingCacheService) Get(ctx context.Context, tool string, params lorekeep.Params, maxAge time.Duration, v any) (ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "cache get",
			"tool", tool,
			"params", params,
			"hit", ok,
			"max_age", maxAge,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, tool, params, maxAge, v)
}

// Set delegates to the wrapped service and logs the write.
func (s *LoggingCacheService) Set(ctx context.Context, tool string, params lorekeep.Params, v any) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "cache set",
			"tool", tool,
			"params", params,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Set(ctx, tool, params, v)
}

// Sweep delegates to the wrapped service and logs how many entries expired.
func (s *LoggingCacheService) Sweep(ctx context.Context) (deleted int64, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "cache sweep",
			"deleted", deleted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sweep(ctx)
}

// Reset delegates to the wrapped service and logs the reset.
func (s *LoggingCacheService) Reset(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "cache reset",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reset(ctx)
}

func levelFor(err error) slog.Level {
	if err != nil {
		return slog.LevelError
	}
	return slog.LevelDebug
}
