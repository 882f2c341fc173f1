package lorekeep

import (
	"regexp"
	"strings"
)

// Factions lists the canonical faction slugs used in Wahapedia URLs.
var Factions = []string{
	"space-marines",
	"adepta-sororitas",
	"adeptus-custodes",
	"adeptus-mechanicus",
	"astra-militarum",
	"black-templars",
	"blood-angels",
	"dark-angels",
	"deathwatch",
	"grey-knights",
	"imperial-agents",
	"imperial-knights",
	"space-wolves",
	"chaos-space-marines",
	"chaos-daemons",
	"chaos-knights",
	"death-guard",
	"emperors-children",
	"thousand-sons",
	"world-eaters",
	"aeldari",
	"drukhari",
	"genestealer-cults",
	"leagues-of-votann",
	"necrons",
	"orks",
	"tau-empire",
	"tyranids",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeFaction resolves free-form text to a slug from Factions.
//
// An exact match after lowercasing and hyphenating whitespace wins. Otherwise
// the slugs containing the input, or contained in it, are candidates and the
// shortest one is returned; equal lengths fall back to the order of Factions.
// Returns false for empty input or when nothing matches.
func NormalizeFaction(raw string) (string, bool) {
	name := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
	if name == "" {
		return "", false
	}

	for _, slug := range Factions {
		if slug == name {
			return slug, true
		}
	}

	best := ""
	for _, slug := range Factions {
		if !strings.Contains(slug, name) && !strings.Contains(name, slug) {
			continue
		}
		if best == "" || len(slug) < len(best) {
			best = slug
		}
	}

	return best, best != ""
}
