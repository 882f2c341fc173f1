package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lorekeep"
)

var _ lorekeep.PageReader = (*LoggingPageReader)(nil)

// LoggingPageReader wraps a PageReader with logging.
type LoggingPageReader struct {
	next   lorekeep.PageReader
	logger *slog.Logger
}

// NewLoggingPageReader creates a new LoggingPageReader.
func NewLoggingPageReader(next lorekeep.PageReader, logger *slog.Logger) *LoggingPageReader {
	return &LoggingPageReader{next: next, logger: logger}
}

// Read delegates to the wrapped reader and logs the content size.
func (r *LoggingPageReader) Read(ctx context.Context, url string) (page *lorekeep.Page, err error) {
	defer func(begin time.Time) {
		size := 0
		if page != nil {
			size = len(page.Content)
		}
		r.logger.Info("read page",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Read(ctx, url)
}
