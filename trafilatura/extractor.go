// Package trafilatura strips wiki chrome from fetched pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/lorekeep"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ lorekeep.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	includeLinks bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLinks keeps anchors in the extracted content.
func WithLinks(include bool) Option {
	return func(e *Extractor) {
		e.includeLinks = include
	}
}

// NewExtractor creates a new Extractor that keeps links by default.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{includeLinks: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
// Returns EINVALID for blank input and ENOTFOUND when no content survives.
func (e *Extractor) Extract(rawHTML string) (*lorekeep.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   e.includeLinks,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, lorekeep.Errorf(lorekeep.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, lorekeep.Errorf(lorekeep.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &lorekeep.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
