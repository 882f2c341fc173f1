package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lorekeep"
)

// Compile-time interface verification.
var (
	_ lorekeep.WikiSearcher  = (*LoggingWikiSearcher)(nil)
	_ lorekeep.RulesSearcher = (*LoggingRulesSearcher)(nil)
)

// LoggingWikiSearcher wraps a WikiSearcher with logging.
type LoggingWikiSearcher struct {
	next   lorekeep.WikiSearcher
	source string
	logger *slog.Logger
}

// NewLoggingWikiSearcher creates a new LoggingWikiSearcher. Source names the
// wiki in log lines.
func NewLoggingWikiSearcher(next lorekeep.WikiSearcher, source string, logger *slog.Logger) *LoggingWikiSearcher {
	return &LoggingWikiSearcher{next: next, source: source, logger: logger}
}

// Search delegates to the wrapped searcher and logs the result count.
func (s *LoggingWikiSearcher) Search(ctx context.Context, query string, limit int) (articles []lorekeep.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Info("wiki search",
			"source", s.source,
			"query", query,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}

// LoggingRulesSearcher wraps a RulesSearcher with logging.
type LoggingRulesSearcher struct {
	next   lorekeep.RulesSearcher
	logger *slog.Logger
}

// NewLoggingRulesSearcher creates a new LoggingRulesSearcher.
func NewLoggingRulesSearcher(next lorekeep.RulesSearcher, logger *slog.Logger) *LoggingRulesSearcher {
	return &LoggingRulesSearcher{next: next, logger: logger}
}

// SearchRules delegates to the wrapped searcher and logs the result count.
func (s *LoggingRulesSearcher) SearchRules(ctx context.Context, query, faction string, limit int) (sections []lorekeep.Section, err error) {
	defer func(begin time.Time) {
		s.logger.Info("rules search",
			"query", query,
			"faction", faction,
			"count", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchRules(ctx, query, faction, limit)
}
