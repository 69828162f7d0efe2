package main

import (
	"fmt"
	"net/http"

	foxhttp "github.com/fwojciec/foxmark/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := &foxhttp.Server{
		Marks:     deps.Marks,
		History:   deps.History,
		Tags:      deps.Tags,
		Index:     deps.Index,
		Searcher:  deps.Engine,
		Fetcher:   deps.Fetcher,
		Sanitizer: deps.Sanitizer,
		Logger:    deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	return http.ListenAndServe(c.Addr, server.Handler())
}
