package lorekeep

import "context"

// Page is a fetched reference page with its main content as markdown.
type Page struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PageReader fetches a page and reduces it to its main content.
// Implementations hide fetching, boilerplate removal, and markdown conversion.
type PageReader interface {
	Read(ctx context.Context, url string) (*Page, error)
}
