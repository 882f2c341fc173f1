package lorekeep

import (
	"regexp"
	"strings"
)

// Section is a heading and the text that follows it, extracted from a
// reference page.
type Section struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	SourceURL string `json:"url"`
}

// SearchSections returns up to limit sections containing query in their
// title or content, ignoring case. Title matches rank before content-only
// matches; input order is preserved within each group.
func SearchSections(sections []Section, query string, limit int) []Section {
	if limit <= 0 {
		return []Section{}
	}

	q := strings.ToLower(query)

	var titleMatches, contentMatches []Section
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), q) {
			titleMatches = append(titleMatches, s)
		}
	}
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), q) {
			continue
		}
		if strings.Contains(strings.ToLower(s.Content), q) {
			contentMatches = append(contentMatches, s)
		}
	}

	results := make([]Section, 0, min(limit, len(titleMatches)+len(contentMatches)))
	results = append(results, titleMatches...)
	results = append(results, contentMatches...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

var (
	headingRe       = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)
	closingHashesRe = regexp.MustCompile(`[ \t]+#+[ \t]*$`)
	codeBlockRe     = regexp.MustCompile("(?s)```.*?(?:```|\\z)")
)

// MarkdownSections splits markdown into one Section per top-level heading.
// The top level is the shallowest heading depth present. Content runs up to
// the next heading of the same or higher level. Headings inside fenced code
// blocks are ignored; an unclosed fence runs to the end of the text.
func MarkdownSections(markdown, sourceURL string) []Section {
	if markdown == "" {
		return []Section{}
	}

	// Blank out code blocks byte-for-byte so match offsets still index markdown.
	masked := codeBlockRe.ReplaceAllStringFunc(markdown, func(block string) string {
		b := []byte(block)
		for i := range b {
			if b[i] != '\n' {
				b[i] = ' '
			}
		}
		return string(b)
	})

	matches := headingRe.FindAllStringSubmatchIndex(masked, -1)
	if len(matches) == 0 {
		return []Section{}
	}

	top := 6
	for _, m := range matches {
		top = min(top, m[3]-m[2])
	}

	type heading struct {
		title      string
		start, end int
	}
	var headings []heading
	for _, m := range matches {
		if m[3]-m[2] != top {
			continue
		}
		title := strings.TrimSpace(closingHashesRe.ReplaceAllString(markdown[m[4]:m[5]], ""))
		headings = append(headings, heading{title: title, start: m[0], end: m[1]})
	}

	sections := make([]Section, 0, len(headings))
	for i, h := range headings {
		if h.title == "" {
			continue
		}
		stop := len(markdown)
		if i+1 < len(headings) {
			stop = headings[i+1].start
		}
		sections = append(sections, Section{
			Title:     h.title,
			Content:   strings.TrimSpace(markdown[h.end:stop]),
			SourceURL: sourceURL,
		})
	}

	return sections
}
