package mock

import (
	"context"

	"github.com/fwojciec/lorekeep"
)

// Compile-time interface verification.
var (
	_ lorekeep.WikiSearcher  = (*WikiSearcher)(nil)
	_ lorekeep.RulesSearcher = (*RulesSearcher)(nil)
)

// WikiSearcher is a mock implementation of lorekeep.WikiSearcher.
type WikiSearcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]lorekeep.Article, error)
}

func (s *WikiSearcher) Search(ctx context.Context, query string, limit int) ([]lorekeep.Article, error) {
	return s.SearchFn(ctx, query, limit)
}

// RulesSearcher is a mock implementation of lorekeep.RulesSearcher.
type RulesSearcher struct {
	SearchRulesFn func(ctx context.Context, query, faction string, limit int) ([]lorekeep.Section, error)
}

func (s *RulesSearcher) SearchRules(ctx context.Context, query, faction string, limit int) ([]lorekeep.Section, error) {
	return s.SearchRulesFn(ctx, query, faction, limit)
}
