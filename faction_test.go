package lorekeep_test

import (
	"testing"

	"github.com/fwojciec/lorekeep"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "exact slug", input: "space-marines", want: "space-marines", wantOK: true},
		{name: "spaces become hyphens", input: "Space Marines", want: "space-marines", wantOK: true},
		{name: "collapses whitespace runs", input: "  Astra \t Militarum ", want: "astra-militarum", wantOK: true},
		{name: "partial match prefers shortest slug", input: "marines", want: "space-marines", wantOK: true},
		{name: "unique partial match", input: "votann", want: "leagues-of-votann", wantOK: true},
		{name: "input containing a slug", input: "Necrons army", want: "necrons", wantOK: true},
		{name: "shortest of several partial matches", input: "knights", want: "grey-knights", wantOK: true},
		{name: "equal length candidates follow list order", input: "e", want: "aeldari", wantOK: true},
		{name: "unknown faction", input: "unknown-faction", want: "", wantOK: false},
		{name: "empty input", input: "", want: "", wantOK: false},
		{name: "whitespace only", input: "   ", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := lorekeep.NormalizeFaction(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeFaction_ReturnsKnownSlugs(t *testing.T) {
	t.Parallel()

	for _, slug := range lorekeep.Factions {
		got, ok := lorekeep.NormalizeFaction(slug)

		assert.True(t, ok, slug)
		assert.Equal(t, slug, got)
	}
}
