package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/lorekeep"
)

// Run executes the lexicanum command.
func (c *LexicanumCmd) Run(deps *Dependencies) error {
	articles, err := deps.Lookup.SearchLexicanum(deps.Ctx, c.Query)
	if err != nil {
		return reportError(deps, err)
	}
	return writeResults(deps.Stdout, articles)
}

// Run executes the fandom command.
func (c *FandomCmd) Run(deps *Dependencies) error {
	articles, err := deps.Lookup.SearchFandom(deps.Ctx, c.Query)
	if err != nil {
		return reportError(deps, err)
	}
	return writeResults(deps.Stdout, articles)
}

// Run executes the wahapedia command.
func (c *WahapediaCmd) Run(deps *Dependencies) error {
	sections, err := deps.Lookup.SearchWahapedia(deps.Ctx, c.Query, c.Faction)
	if err != nil {
		return reportError(deps, err)
	}
	return writeResults(deps.Stdout, sections)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Lookup.SearchAll(deps.Ctx, c.Query, c.Faction)
	if err != nil {
		return reportError(deps, err)
	}
	return writeJSON(deps.Stdout, results)
}

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	if c.Query != "" {
		sections, err := deps.Lookup.ReadSections(deps.Ctx, c.URL, c.Query, c.Limit)
		if err != nil {
			return reportError(deps, err)
		}
		return writeResults(deps.Stdout, sections)
	}

	page, err := deps.Lookup.ReadPage(deps.Ctx, c.URL)
	if err != nil {
		return reportError(deps, err)
	}
	return writeJSON(deps.Stdout, page)
}

// reportedError marks an error already written to stderr by a command.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func reportError(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", lorekeep.ErrorMessage(err))
	return reportedError{err}
}

func writeResults(w io.Writer, results any) error {
	return writeJSON(w, map[string]any{"results": results})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
