package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/firefox"
	"github.com/fwojciec/foxmark/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	path := c.File
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		// A directory means a Firefox bookmarkbackups folder: use the
		// newest backup in it.
		latest, err := fs.LatestBackup(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
			return err
		}
		path = latest
		fmt.Fprintf(deps.Stdout, "Importing %s\n", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	snap, err := firefox.Parse(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}

	result, err := deps.Registry.Reconcile(deps.Ctx, snap)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}
	for _, regErr := range result.Errs {
		fmt.Fprintf(deps.Stderr, "  skip: %s\n", foxmark.ErrorMessage(regErr))
	}

	fmt.Fprintf(deps.Stdout, "Registered %d marks (%d unchanged)\n", result.Registered, result.Unchanged)

	var pruneIDs []int64
	if c.Prune {
		pruneIDs = result.PruneIDs
	} else if len(result.PruneIDs) > 0 {
		fmt.Fprintf(deps.Stdout, "%d marks missing from backup; re-run with --prune to delete them\n", len(result.PruneIDs))
	}

	cleanup, err := deps.Registry.Cleanup(deps.Ctx, pruneIDs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}
	if cleanup.Flagged > 0 {
		fmt.Fprintf(deps.Stdout, "Erased content for %d nosave marks\n", cleanup.Flagged)
	}
	if cleanup.Pruned > 0 {
		fmt.Fprintf(deps.Stdout, "Pruned %d marks\n", cleanup.Pruned)
	}

	// The index follows storage: reseed so new and pruned marks are
	// reflected immediately.
	if result.Registered > 0 || cleanup.Pruned > 0 {
		count, err := deps.Index.Seed(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Indexed %d marks\n", count)
	}

	return nil
}
