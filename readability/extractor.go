// Package readability is the second-chance extractor for pages trafilatura
// cannot reduce.
package readability

import (
	"strings"

	"github.com/fwojciec/lorekeep"
	"github.com/go-shiori/go-readability"
)

var _ lorekeep.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns EINVALID for blank input and ENOTFOUND when nothing readable remains.
func (e *Extractor) Extract(rawHTML string) (*lorekeep.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, lorekeep.Errorf(lorekeep.ENOTFOUND, "no readable content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, lorekeep.Errorf(lorekeep.ENOTFOUND, "no readable content")
	}

	return &lorekeep.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
