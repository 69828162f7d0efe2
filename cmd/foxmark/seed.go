package main

import (
	"fmt"

	"github.com/fwojciec/foxmark"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	count, err := deps.Index.Seed(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d marks\n", count)
	return nil
}
