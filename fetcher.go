package lorekeep

import "context"

// Fetcher retrieves raw HTML or JSON bodies from URLs.
type Fetcher interface {
	// Fetch issues a GET for url and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}
