// Package goquery extracts headed sections from HTML reference pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lorekeep"
	"golang.org/x/net/html"
)

// skippedElements never contribute text to a section.
var skippedElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockElements separate their text from neighbouring text with a space.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "header": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// ExtractSections returns one section per top-level heading in document
// order. The top level is the shallowest heading present; a section's content
// is the text after its heading up to the next heading of the same or higher
// level, so deeper headings are folded into their parent's content.
// Empty or heading-less documents yield no sections.
func ExtractSections(rawHTML, sourceURL string) ([]lorekeep.Section, error) {
	sections := []lorekeep.Section{}
	if strings.TrimSpace(rawHTML) == "" {
		return sections, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, lorekeep.Errorf(lorekeep.EINVALID, "failed to parse HTML: %v", err)
	}

	top := topHeadingLevel(doc.Nodes)
	if top == 0 {
		return sections, nil
	}

	var (
		title   string
		content strings.Builder
		open    bool
	)
	flush := func() {
		if open {
			sections = append(sections, lorekeep.Section{
				Title:     title,
				Content:   collapseSpace(content.String()),
				SourceURL: sourceURL,
			})
		}
		content.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if open {
				content.WriteString(n.Data)
			}
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if headingLevel(n.Data) == top {
				flush()
				title = collapseSpace(goquery.NewDocumentFromNode(n).Text())
				open = title != ""
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block && open {
			content.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block && open {
			content.WriteByte(' ')
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	flush()

	return sections, nil
}

// topHeadingLevel returns the shallowest heading level outside skipped
// elements, or 0 when there is none.
func topHeadingLevel(nodes []*html.Node) int {
	top := 0
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			if level := headingLevel(n.Data); level > 0 && (top == 0 || level < top) {
				top = level
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return top
}

// headingLevel returns 1-6 for h1-h6 element names and 0 otherwise.
func headingLevel(name string) int {
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '6' {
		return 0
	}
	return int(name[1] - '0')
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
