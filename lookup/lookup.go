// Package lookup answers assistant tool calls from the cache or, on a miss,
// from the reference sources.
package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/lorekeep"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Tool names used as cache namespaces.
const (
	ToolLexicanum = "search_wh40k_lexicanum"
	ToolFandom    = "search_wh40k_fandom"
	ToolWahapedia = "search_wh40k_wahapedia"
	ToolReadPage  = "read_wh40k_page"
)

// Service looks up reference text with a cache in front of every source.
type Service struct {
	Config    lorekeep.Config
	Cache     lorekeep.CacheService
	Lexicanum lorekeep.WikiSearcher
	Fandom    lorekeep.WikiSearcher
	Wahapedia lorekeep.RulesSearcher
	Reader    lorekeep.PageReader
	Logger    *slog.Logger

	group singleflight.Group
}

// Results holds the combined answer of every enabled source.
type Results struct {
	Lexicanum []lorekeep.Article `json:"lexicanum,omitempty"`
	Fandom    []lorekeep.Article `json:"fandom,omitempty"`
	Wahapedia []lorekeep.Section `json:"wahapedia,omitempty"`
}

// SearchLexicanum searches the Lexicanum wiki.
func (s *Service) SearchLexicanum(ctx context.Context, query string) ([]lorekeep.Article, error) {
	return s.searchWiki(ctx, ToolLexicanum, "lexicanum", s.Config.Lexicanum, s.Lexicanum, query)
}

// SearchFandom searches the Fandom wiki.
func (s *Service) SearchFandom(ctx context.Context, query string) ([]lorekeep.Article, error) {
	return s.searchWiki(ctx, ToolFandom, "fandom", s.Config.Fandom, s.Fandom, query)
}

func (s *Service) searchWiki(ctx context.Context, tool, name string, cfg lorekeep.SourceConfig, searcher lorekeep.WikiSearcher, query string) ([]lorekeep.Article, error) {
	if !cfg.Enabled || searcher == nil {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "%s source disabled", name)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "query required")
	}

	params := lorekeep.Params{"query": query, "num_results": cfg.NumResults}
	return cached(ctx, s, tool, params, func(ctx context.Context) ([]lorekeep.Article, error) {
		return searcher.Search(ctx, query, cfg.NumResults)
	})
}

// SearchWahapedia searches rule sections of a faction page, or of the core
// rules when faction does not name a known faction.
func (s *Service) SearchWahapedia(ctx context.Context, query, faction string) ([]lorekeep.Section, error) {
	cfg := s.Config.Wahapedia
	if !cfg.Enabled || s.Wahapedia == nil {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "wahapedia source disabled")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "query required")
	}

	// Spellings that resolve to the same page share an entry.
	slug, _ := lorekeep.NormalizeFaction(faction)
	params := lorekeep.Params{"query": query, "faction": slug, "num_results": cfg.NumResults}
	return cached(ctx, s, ToolWahapedia, params, func(ctx context.Context) ([]lorekeep.Section, error) {
		return s.Wahapedia.SearchRules(ctx, query, slug, cfg.NumResults)
	})
}

// ReadPage returns the main content of a reference page.
func (s *Service) ReadPage(ctx context.Context, url string) (*lorekeep.Page, error) {
	if s.Reader == nil {
		return nil, lorekeep.Errorf(lorekeep.ENOTIMPLEMENTED, "page reading not configured")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "url required")
	}

	return cached(ctx, s, ToolReadPage, lorekeep.Params{"url": url}, func(ctx context.Context) (*lorekeep.Page, error) {
		return s.Reader.Read(ctx, url)
	})
}

// ReadSections reads a page and returns up to limit of its sections matching
// query, ranked like Wahapedia results.
func (s *Service) ReadSections(ctx context.Context, url, query string, limit int) ([]lorekeep.Section, error) {
	page, err := s.ReadPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return lorekeep.SearchSections(lorekeep.MarkdownSections(page.Content, page.URL), query, limit), nil
}

// SearchAll queries every enabled source concurrently. A failing source
// fails the whole search.
func (s *Service) SearchAll(ctx context.Context, query, faction string) (*Results, error) {
	var res Results
	g, ctx := errgroup.WithContext(ctx)

	if s.Config.Lexicanum.Enabled && s.Lexicanum != nil {
		g.Go(func() error {
			var err error
			res.Lexicanum, err = s.SearchLexicanum(ctx, query)
			return err
		})
	}
	if s.Config.Fandom.Enabled && s.Fandom != nil {
		g.Go(func() error {
			var err error
			res.Fandom, err = s.SearchFandom(ctx, query)
			return err
		})
	}
	if s.Config.Wahapedia.Enabled && s.Wahapedia != nil {
		g.Go(func() error {
			var err error
			res.Wahapedia, err = s.SearchWahapedia(ctx, query, faction)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Clear removes every cached entry.
func (s *Service) Clear(ctx context.Context) error {
	return s.Cache.Reset(ctx)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// cached serves tool/params from the cache, calling fetch on a miss.
// Concurrent misses for the same key share one fetch, which runs detached
// from any single caller's cancellation; each caller still returns as soon
// as its own context is done. Cache failures are logged and never fail the
// lookup.
func cached[T any](ctx context.Context, s *Service, tool string, params lorekeep.Params, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	key, err := lorekeep.CacheKey(tool, params)
	if err != nil {
		return zero, err
	}

	ch := s.group.DoChan(key, func() (any, error) {
		ctx := context.WithoutCancel(ctx)

		var hit T
		ok, err := s.Cache.Get(ctx, tool, params, s.Config.CacheMaxAge, &hit)
		if err != nil {
			s.logger().WarnContext(ctx, "cache read failed", "tool", tool, "err", err)
		}
		if ok {
			return hit, nil
		}

		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.Cache.Set(ctx, tool, params, fresh); err != nil {
			s.logger().WarnContext(ctx, "cache write failed", "tool", tool, "err", err)
		}
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
