package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/foxmark"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := foxmark.SearchOptions{
		Match:    foxmark.MatchMode(c.Match),
		Sort:     foxmark.SortMode(c.Sort),
		SortAttr: c.SortAttr,
	}
	if c.MaxAge != "" {
		maxAge, err := time.ParseDuration(c.MaxAge)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid --max-age %q: %v\n", c.MaxAge, err)
			return err
		}
		opts.MaxAge = maxAge
	}

	results, err := deps.Engine.Search(deps.Ctx, strings.Join(c.Query, " "), opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for _, res := range results {
		fmt.Fprintf(deps.Stdout, "%d  %s\n    %s\n", res.ID, res.Title, res.URI)
		if res.Excerpt != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", res.Excerpt)
		}
	}

	return nil
}
