package main

import (
	"fmt"

	"github.com/fwojciec/foxmark"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	// Marks flagged for deletion in the UI are purged before the crawl so
	// their URIs are never fetched again.
	flagged, err := deps.Marks.MarksFlaggedForDeletion(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}
	if len(flagged) > 0 {
		purged, err := deps.Marks.DeleteMarksByID(deps.Ctx, flagged)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Purged %d marks flagged for deletion\n", purged)
	}

	processed, err := deps.Downloader.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}

	if processed == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to download.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Processed %d marks\n", processed)

	// Downloaded bodies change what the index should match on.
	count, err := deps.Index.Seed(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foxmark.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d marks\n", count)

	return nil
}
