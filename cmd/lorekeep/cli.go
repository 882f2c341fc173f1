package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lorekeep"
	"github.com/fwojciec/lorekeep/lookup"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Lookup *lookup.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Cache     string        `env:"LOREKEEP_CACHE" placeholder:"PATH" help:"Cache file (default: cache.db next to the executable)"`
	KeepCache bool          `env:"LOREKEEP_KEEP_CACHE" help:"Reuse the cache file from previous runs instead of starting empty"`
	Verbose   bool          `short:"v" help:"Log requests and cache activity to stderr"`
	Timeout   time.Duration `default:"10s" env:"LOREKEEP_TIMEOUT" help:"Per-request HTTP timeout"`

	Options Options `embed:""`

	Lexicanum LexicanumCmd `cmd:"" help:"Search the Lexicanum wiki"`
	Fandom    FandomCmd    `cmd:"" help:"Search the Fandom wiki"`
	Wahapedia WahapediaCmd `cmd:"" help:"Search Wahapedia rules"`
	Search    SearchCmd    `cmd:"" help:"Search every enabled source"`
	Read      ReadCmd      `cmd:"" help:"Read the main content of a page"`
	Factions  FactionsCmd  `cmd:"" help:"List factions or resolve a faction name"`
	Clear     ClearCmd     `cmd:"" help:"Delete every cached entry"`
}

// Options are the per-source settings.
type Options struct {
	LexicanumEnabled bool          `default:"${lexicanum_enabled}" negatable:"" env:"LOREKEEP_LEXICANUM_ENABLED" group:"Sources" help:"Enable Lexicanum"`
	LexicanumResults int           `default:"${lexicanum_results}" env:"LOREKEEP_LEXICANUM_RESULTS" group:"Sources" help:"Lexicanum results per search"`
	FandomEnabled    bool          `default:"${fandom_enabled}" negatable:"" env:"LOREKEEP_FANDOM_ENABLED" group:"Sources" help:"Enable Fandom"`
	FandomResults    int           `default:"${fandom_results}" env:"LOREKEEP_FANDOM_RESULTS" group:"Sources" help:"Fandom results per search"`
	WahapediaEnabled bool          `default:"${wahapedia_enabled}" negatable:"" env:"LOREKEEP_WAHAPEDIA_ENABLED" group:"Sources" help:"Enable Wahapedia"`
	WahapediaResults int           `default:"${wahapedia_results}" env:"LOREKEEP_WAHAPEDIA_RESULTS" group:"Sources" help:"Wahapedia sections per search"`
	CacheMaxAge      time.Duration `default:"${cache_max_age}" env:"LOREKEEP_CACHE_MAX_AGE" help:"Ignore cached entries older than this (0 accepts any unexpired entry)"`
}

// DefaultVars exposes lorekeep.DefaultConfig to the Options default tags.
func DefaultVars() kong.Vars {
	cfg := lorekeep.DefaultConfig()
	return kong.Vars{
		"lexicanum_enabled": strconv.FormatBool(cfg.Lexicanum.Enabled),
		"lexicanum_results": strconv.Itoa(cfg.Lexicanum.NumResults),
		"fandom_enabled":    strconv.FormatBool(cfg.Fandom.Enabled),
		"fandom_results":    strconv.Itoa(cfg.Fandom.NumResults),
		"wahapedia_enabled": strconv.FormatBool(cfg.Wahapedia.Enabled),
		"wahapedia_results": strconv.Itoa(cfg.Wahapedia.NumResults),
		"cache_max_age":     cfg.CacheMaxAge.String(),
	}
}

// Config converts the flags into a lorekeep.Config.
func (o Options) Config() lorekeep.Config {
	return lorekeep.Config{
		Lexicanum:   lorekeep.SourceConfig{Enabled: o.LexicanumEnabled, NumResults: o.LexicanumResults},
		Fandom:      lorekeep.SourceConfig{Enabled: o.FandomEnabled, NumResults: o.FandomResults},
		Wahapedia:   lorekeep.SourceConfig{Enabled: o.WahapediaEnabled, NumResults: o.WahapediaResults},
		CacheMaxAge: o.CacheMaxAge,
	}
}

// LexicanumCmd is the "lexicanum" subcommand.
type LexicanumCmd struct {
	Query string `arg:"" help:"Search terms"`
}

// FandomCmd is the "fandom" subcommand.
type FandomCmd struct {
	Query string `arg:"" help:"Search terms"`
}

// WahapediaCmd is the "wahapedia" subcommand.
type WahapediaCmd struct {
	Query   string `arg:"" help:"Rule or ability to look for"`
	Faction string `short:"f" help:"Faction whose page to search (default: core rules)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search terms"`
	Faction string `short:"f" help:"Faction for the Wahapedia search"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Query string `short:"q" help:"Return only sections matching this text"`
	Limit int    `default:"3" help:"Maximum sections returned with --query"`
}

// FactionsCmd is the "factions" subcommand.
type FactionsCmd struct {
	Name string `arg:"" optional:"" help:"Faction name to resolve"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct{}
