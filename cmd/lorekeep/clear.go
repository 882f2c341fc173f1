package main

import "fmt"

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if err := deps.Lookup.Clear(deps.Ctx); err != nil {
		return reportError(deps, err)
	}
	fmt.Fprintln(deps.Stdout, "Cache cleared.")
	return nil
}
