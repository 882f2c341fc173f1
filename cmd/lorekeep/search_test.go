package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/lorekeep"
	main "github.com/fwojciec/lorekeep/cmd/lorekeep"
	"github.com/fwojciec/lorekeep/lookup"
	"github.com/fwojciec/lorekeep/mock"
	"github.com/fwojciec/lorekeep/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(t *testing.T, svc *lookup.Service) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	svc.Config = lorekeep.DefaultConfig()
	svc.Cache = sqlite.NewCacheService(db)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Lookup: svc,
	}, stdout, stderr
}

func TestLexicanumCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results as JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &lookup.Service{
			Lexicanum: &mock.WikiSearcher{
				SearchFn: func(_ context.Context, query string, limit int) ([]lorekeep.Article, error) {
					assert.Equal(t, "Space Marines", query)
					assert.Equal(t, 1, limit)
					return []lorekeep.Article{{
						Title:   "Space Marines",
						Snippet: "The Space Marines are...",
						URL:     "https://wh40k.lexicanum.com/wiki/Space_Marines",
					}}, nil
				},
			},
		})

		err := (&main.LexicanumCmd{Query: "Space Marines"}).Run(deps)
		require.NoError(t, err)

		var out struct {
			Results []lorekeep.Article `json:"results"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		require.Len(t, out.Results, 1)
		assert.Equal(t, "https://wh40k.lexicanum.com/wiki/Space_Marines", out.Results[0].URL)
	})

	t.Run("reports errors on stderr", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, &lookup.Service{
			Lexicanum: &mock.WikiSearcher{
				SearchFn: func(context.Context, string, int) ([]lorekeep.Article, error) {
					return nil, lorekeep.Errorf(lorekeep.EUNAVAILABLE, "HTTP 503 for lexicanum")
				},
			},
		})

		err := (&main.LexicanumCmd{Query: "Horus"}).Run(deps)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "error: HTTP 503 for lexicanum")
	})
}

func TestFandomCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, &lookup.Service{
		Fandom: &mock.WikiSearcher{
			SearchFn: func(context.Context, string, int) ([]lorekeep.Article, error) {
				return []lorekeep.Article{{Title: "Horus Heresy"}}, nil
			},
		},
	})

	err := (&main.FandomCmd{Query: "Horus Heresy"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"title": "Horus Heresy"`)
}

func TestWahapediaCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes resolved faction", func(t *testing.T) {
		t.Parallel()

		var gotFaction string
		deps, stdout, _ := newDeps(t, &lookup.Service{
			Wahapedia: &mock.RulesSearcher{
				SearchRulesFn: func(_ context.Context, _, faction string, _ int) ([]lorekeep.Section, error) {
					gotFaction = faction
					return []lorekeep.Section{{Title: "Waaagh!", Content: "Once per battle.", SourceURL: "https://wahapedia.ru/wh40k10ed/factions/orks/"}}, nil
				},
			},
		})

		err := (&main.WahapediaCmd{Query: "waaagh", Faction: "Orks"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "orks", gotFaction)
		assert.Contains(t, stdout.String(), `"url": "https://wahapedia.ru/wh40k10ed/factions/orks/"`)
	})

	t.Run("prints empty results", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &lookup.Service{
			Wahapedia: &mock.RulesSearcher{
				SearchRulesFn: func(context.Context, string, string, int) ([]lorekeep.Section, error) {
					return []lorekeep.Section{}, nil
				},
			},
		})

		err := (&main.WahapediaCmd{Query: "psychic"}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `{"results": []}`, stdout.String())
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, &lookup.Service{
		Lexicanum: &mock.WikiSearcher{
			SearchFn: func(context.Context, string, int) ([]lorekeep.Article, error) {
				return []lorekeep.Article{{Title: "Abaddon"}}, nil
			},
		},
		Fandom: &mock.WikiSearcher{
			SearchFn: func(context.Context, string, int) ([]lorekeep.Article, error) {
				return []lorekeep.Article{{Title: "Abaddon the Despoiler"}}, nil
			},
		},
		Wahapedia: &mock.RulesSearcher{
			SearchRulesFn: func(context.Context, string, string, int) ([]lorekeep.Section, error) {
				return []lorekeep.Section{{Title: "Abaddon"}}, nil
			},
		},
	})

	err := (&main.SearchCmd{Query: "abaddon", Faction: "chaos space marines"}).Run(deps)
	require.NoError(t, err)

	var out lookup.Results
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "Abaddon", out.Lexicanum[0].Title)
	assert.Equal(t, "Abaddon the Despoiler", out.Fandom[0].Title)
	assert.Equal(t, "Abaddon", out.Wahapedia[0].Title)
}

func TestReadCmd_Run(t *testing.T) {
	t.Parallel()

	horus := &mock.PageReader{
		ReadFn: func(_ context.Context, url string) (*lorekeep.Page, error) {
			return &lorekeep.Page{
				URL:     url,
				Title:   "Horus",
				Content: "# Horus\n\n## Heresy\n\nFell to Chaos.\n\n## Death\n\nSlain aboard the Vengeful Spirit.",
			}, nil
		},
	}

	t.Run("prints whole page", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &lookup.Service{Reader: horus})

		err := (&main.ReadCmd{URL: "https://wh40k.lexicanum.com/wiki/Horus"}).Run(deps)
		require.NoError(t, err)

		var page lorekeep.Page
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &page))
		assert.Equal(t, "Horus", page.Title)
		assert.Contains(t, page.Content, "Vengeful Spirit")
	})

	t.Run("prints matching sections with query", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &lookup.Service{Reader: horus})

		err := (&main.ReadCmd{URL: "https://wh40k.lexicanum.com/wiki/Horus", Query: "vengeful", Limit: 3}).Run(deps)
		require.NoError(t, err)

		var out struct {
			Results []lorekeep.Section `json:"results"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		require.Len(t, out.Results, 1)
		assert.Equal(t, "Horus", out.Results[0].Title)
	})
}

func TestClearCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, &lookup.Service{})

	err := (&main.ClearCmd{}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Cache cleared.")
}

func TestFactionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists every faction", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		require.NoError(t, (&main.FactionsCmd{}).Run(deps))

		assert.Equal(t, len(lorekeep.Factions), bytes.Count(stdout.Bytes(), []byte("\n")))
		assert.Contains(t, stdout.String(), "leagues-of-votann\n")
	})

	t.Run("resolves a name", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		require.NoError(t, (&main.FactionsCmd{Name: "Votann"}).Run(deps))

		assert.Equal(t, "leagues-of-votann\n", stdout.String())
	})

	t.Run("returns ENOTFOUND for unknown name", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.FactionsCmd{Name: "squats"}).Run(deps)

		assert.Equal(t, lorekeep.ENOTFOUND, lorekeep.ErrorCode(err))
		assert.Contains(t, stderr.String(), "core rules")
	})
}
