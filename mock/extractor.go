package mock

import "github.com/fwojciec/lorekeep"

var _ lorekeep.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lorekeep.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*lorekeep.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*lorekeep.ExtractResult, error) {
	return e.ExtractFn(html)
}
