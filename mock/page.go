package mock

import (
	"context"

	"github.com/fwojciec/lorekeep"
)

var _ lorekeep.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of lorekeep.PageReader.
type PageReader struct {
	ReadFn func(ctx context.Context, url string) (*lorekeep.Page, error)
}

func (r *PageReader) Read(ctx context.Context, url string) (*lorekeep.Page, error) {
	return r.ReadFn(ctx, url)
}
