// Package wahapedia searches the rules pages published on Wahapedia.
package wahapedia

import (
	"context"
	"strings"

	"github.com/fwojciec/lorekeep"
	"github.com/fwojciec/lorekeep/goquery"
)

// Page locations for the current edition.
const (
	BaseURL      = "https://wahapedia.ru/wh40k10ed"
	CoreRulesURL = BaseURL + "/the-rules/core-rules/"
)

var _ lorekeep.RulesSearcher = (*Searcher)(nil)

// Searcher finds rule sections on faction and core rules pages.
type Searcher struct {
	fetcher lorekeep.Fetcher
	baseURL string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL points the Searcher at another edition or a mirror.
func WithBaseURL(baseURL string) Option {
	return func(s *Searcher) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(fetcher lorekeep.Fetcher, opts ...Option) *Searcher {
	s := &Searcher{
		fetcher: fetcher,
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageURL returns the page searched for faction. Names that do not resolve
// to a known faction map to the core rules.
func (s *Searcher) PageURL(faction string) string {
	if slug, ok := lorekeep.NormalizeFaction(faction); ok {
		return s.baseURL + "/factions/" + slug + "/"
	}
	return s.baseURL + "/the-rules/core-rules/"
}

// SearchRules returns at most limit sections matching query.
func (s *Searcher) SearchRules(ctx context.Context, query, faction string, limit int) ([]lorekeep.Section, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "query required")
	}

	pageURL := s.PageURL(faction)
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	sections, err := goquery.ExtractSections(body, pageURL)
	if err != nil {
		return nil, err
	}

	return lorekeep.SearchSections(sections, query, limit), nil
}
