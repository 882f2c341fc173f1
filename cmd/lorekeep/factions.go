package main

import (
	"fmt"

	"github.com/fwojciec/lorekeep"
)

// Run executes the factions command.
func (c *FactionsCmd) Run(deps *Dependencies) error {
	if c.Name == "" {
		for _, slug := range lorekeep.Factions {
			fmt.Fprintln(deps.Stdout, slug)
		}
		return nil
	}

	slug, ok := lorekeep.NormalizeFaction(c.Name)
	if !ok {
		err := lorekeep.Errorf(lorekeep.ENOTFOUND, "unknown faction %q, searches fall back to the core rules", c.Name)
		return reportError(deps, err)
	}
	fmt.Fprintln(deps.Stdout, slug)
	return nil
}
