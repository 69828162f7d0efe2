// Package query executes user searches: it runs the search index, joins
// ranked IDs back to stored mark rows preserving rank order, and builds
// highlighted excerpts.
package query

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/foxmark"
)

// staleRepairTimeout bounds the background deletion of index entries whose
// mark rows are gone.
const staleRepairTimeout = 5 * time.Second

// Engine translates a user search string into index calls and mark rows.
type Engine struct {
	Index foxmark.SearchIndex
	Marks foxmark.MarkService

	// Excerpts configures highlighting. The zero value means
	// foxmark.DefaultExcerptConfig.
	Excerpts foxmark.ExcerptConfig

	// Logger records non-fatal repair and excerpt problems. Nil disables
	// logging.
	Logger *slog.Logger
}

// Search runs q against the index and returns results strictly in the
// index's rank order; no secondary sort is applied here.
//
// Ranked IDs missing from storage are stale index leftovers: they are
// excluded from the output and deleted from the index in the background.
// Excerpt generation failures degrade to excerpt-less results. Neither
// condition fails the query.
func (e *Engine) Search(ctx context.Context, q string, opts foxmark.SearchOptions) ([]*foxmark.SearchResult, error) {
	ranked, err := e.Index.Query(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	marks, err := e.Marks.MarksForSearch(ctx, ranked)
	if err != nil {
		return nil, err
	}

	// Re-project the batch result into rank order; storage return order
	// is not the rank order.
	var results []*foxmark.SearchResult
	var blobs []string
	for _, id := range ranked {
		mark, ok := marks[id]
		if !ok {
			e.repairStale(ctx, id)
			continue
		}

		results = append(results, &foxmark.SearchResult{
			ID:         mark.ID,
			Title:      mark.Title,
			Domain:     domain(mark.URI),
			URI:        mark.URI,
			Tags:       mark.Tags,
			Modified:   mark.Modified,
			Downloaded: mark.Downloaded > 0,
			Deleted:    mark.Deleted,
		})

		// The excerpt source is the same blob the index matched on.
		blobs = append(blobs, mark.Title+" "+mark.URI+" "+mark.Tags+mark.BodyClean)
	}

	cfg := e.Excerpts
	if cfg == (foxmark.ExcerptConfig{}) {
		cfg = foxmark.DefaultExcerptConfig()
	}

	excerpts, err := e.Index.BuildExcerpts(ctx, blobs, q, cfg)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Error("excerpt generation failed", "query", q, "error", err)
		}
		return results, nil
	}

	for i, excerpt := range excerpts {
		if i < len(results) {
			results[i].Excerpt = excerpt
		}
	}
	return results, nil
}

// repairStale removes an index entry whose mark row was deleted from
// storage. Best effort, in the background: a repair failure only logs.
func (e *Engine) repairStale(ctx context.Context, id int64) {
	if e.Logger != nil {
		e.Logger.Warn("index out of sync with storage, deleting stale entry", "id", id)
	}

	repairCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), staleRepairTimeout)
	go func() {
		defer cancel()
		if err := e.Index.DeleteByID(repairCtx, id); err != nil && e.Logger != nil {
			e.Logger.Error("stale index entry deletion failed", "id", id, "error", err)
		}
	}()
}

// domain extracts the host part of a mark's URI for display, "" when the
// URI does not parse.
func domain(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Host
}
