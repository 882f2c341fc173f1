// Package mediawiki searches MediaWiki wikis through their query API.
package mediawiki

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/lorekeep"
)

// Lexicanum and Fandom endpoints.
const (
	LexicanumAPIURL  = "https://wh40k.lexicanum.com/mediawiki/api.php"
	LexicanumBaseURL = "https://wh40k.lexicanum.com"
	FandomAPIURL     = "https://warhammer40k.fandom.com/api.php"
	FandomBaseURL    = "https://warhammer40k.fandom.com"
)

var _ lorekeep.WikiSearcher = (*Searcher)(nil)

// Searcher runs full-text searches against a MediaWiki instance.
type Searcher struct {
	fetcher   lorekeep.Fetcher
	converter lorekeep.Converter
	apiURL    string
	baseURL   string
}

// NewSearcher creates a Searcher for the wiki whose API lives at apiURL and
// whose articles live under baseURL + "/wiki/".
func NewSearcher(fetcher lorekeep.Fetcher, converter lorekeep.Converter, apiURL, baseURL string) *Searcher {
	return &Searcher{
		fetcher:   fetcher,
		converter: converter,
		apiURL:    apiURL,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// NewLexicanumSearcher creates a Searcher for the Warhammer 40k Lexicanum.
func NewLexicanumSearcher(fetcher lorekeep.Fetcher, converter lorekeep.Converter) *Searcher {
	return NewSearcher(fetcher, converter, LexicanumAPIURL, LexicanumBaseURL)
}

// NewFandomSearcher creates a Searcher for the Warhammer 40k Fandom wiki.
func NewFandomSearcher(fetcher lorekeep.Fetcher, converter lorekeep.Converter) *Searcher {
	return NewSearcher(fetcher, converter, FandomAPIURL, FandomBaseURL)
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Search returns at most limit articles matching query.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]lorekeep.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "query required")
	}
	if limit <= 0 {
		return []lorekeep.Article{}, nil
	}

	body, err := s.fetcher.Fetch(ctx, s.searchURL(query, limit))
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, lorekeep.Errorf(lorekeep.EUNAVAILABLE, "malformed search response: %v", err)
	}
	if resp.Error != nil {
		return nil, lorekeep.Errorf(lorekeep.EUNAVAILABLE, "wiki search failed: %s: %s", resp.Error.Code, resp.Error.Info)
	}

	articles := make([]lorekeep.Article, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		if len(articles) == limit {
			break
		}
		snippet, err := s.snippetText(hit.Snippet)
		if err != nil {
			return nil, err
		}
		articles = append(articles, lorekeep.Article{
			Title:   hit.Title,
			Snippet: snippet,
			URL:     s.ArticleURL(hit.Title),
		})
	}

	return articles, nil
}

// ArticleURL returns the canonical URL of the article with the given title.
func (s *Searcher) ArticleURL(title string) string {
	return s.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func (s *Searcher) searchURL(query string, limit int) string {
	v := url.Values{}
	v.Set("action", "query")
	v.Set("list", "search")
	v.Set("srsearch", query)
	v.Set("srlimit", strconv.Itoa(limit))
	v.Set("format", "json")
	return s.apiURL + "?" + v.Encode()
}

// snippetText turns the highlighted snippet markup into plain markdown.
func (s *Searcher) snippetText(snippet string) (string, error) {
	if strings.TrimSpace(snippet) == "" {
		return "", nil
	}
	return s.converter.Convert(snippet)
}
