package mock

import "github.com/fwojciec/lorekeep"

var _ lorekeep.Converter = (*Converter)(nil)

// Converter is a mock implementation of lorekeep.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
