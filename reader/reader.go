// Package reader turns a wiki or rules URL into a markdown Page.
package reader

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/lorekeep"
)

// DefaultMaxContentLength bounds the markdown returned for a single page.
const DefaultMaxContentLength = 20000

var _ lorekeep.PageReader = (*Reader)(nil)

// Reader fetches a page, strips boilerplate, and renders markdown.
type Reader struct {
	fetcher   lorekeep.Fetcher
	extractor lorekeep.Extractor
	fallback  lorekeep.Extractor
	converter lorekeep.Converter
	maxLen    int
	hosts     map[string]bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxContentLength truncates page content to n bytes. Zero disables
// truncation.
func WithMaxContentLength(n int) Option {
	return func(r *Reader) {
		r.maxLen = n
	}
}

// WithFallbackExtractor sets an extractor tried when the primary one finds
// no main content.
func WithFallbackExtractor(e lorekeep.Extractor) Option {
	return func(r *Reader) {
		r.fallback = e
	}
}

// WithAllowedHosts restricts Read to URLs on the given hosts.
func WithAllowedHosts(hosts ...string) Option {
	return func(r *Reader) {
		r.hosts = make(map[string]bool, len(hosts))
		for _, h := range hosts {
			r.hosts[strings.ToLower(h)] = true
		}
	}
}

// New creates a new Reader.
func New(fetcher lorekeep.Fetcher, extractor lorekeep.Extractor, converter lorekeep.Converter, opts ...Option) *Reader {
	r := &Reader{
		fetcher:   fetcher,
		extractor: extractor,
		converter: converter,
		maxLen:    DefaultMaxContentLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read fetches rawURL and returns its main content as markdown.
func (r *Reader) Read(ctx context.Context, rawURL string) (*lorekeep.Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "invalid page URL: %q", rawURL)
	}
	if r.hosts != nil && !r.hosts[strings.ToLower(u.Hostname())] {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "host not allowed: %s", u.Hostname())
	}

	body, err := r.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	extracted, err := r.extract(body)
	if err != nil {
		return nil, err
	}

	content, err := r.converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	return &lorekeep.Page{
		URL:     u.String(),
		Title:   extracted.Title,
		Content: truncate(content, r.maxLen),
	}, nil
}

func (r *Reader) extract(body string) (*lorekeep.ExtractResult, error) {
	extracted, err := r.extractor.Extract(body)
	if r.fallback == nil {
		return extracted, err
	}
	if err == nil && strings.TrimSpace(extracted.ContentHTML) != "" {
		return extracted, nil
	}
	if err != nil && lorekeep.ErrorCode(err) != lorekeep.ENOTFOUND {
		return nil, err
	}
	return r.fallback.Extract(body)
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
