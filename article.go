package lorekeep

import "context"

// Article is a single hit from a wiki search.
type Article struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// WikiSearcher searches a wiki for articles.
type WikiSearcher interface {
	// Search returns at most limit articles matching query, in the order the
	// wiki ranks them.
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

// RulesSearcher searches rule sections of a faction's reference page.
type RulesSearcher interface {
	// SearchRules returns at most limit sections matching query. An empty or
	// unresolvable faction searches the core rules instead.
	SearchRules(ctx context.Context, query, faction string, limit int) ([]Section, error)
}
