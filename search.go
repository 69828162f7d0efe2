package foxmark

import (
	"context"
	"time"
)

// MatchMode selects how a query string matches indexed documents.
type MatchMode string

const (
	// MatchAll requires every term to match.
	MatchAll MatchMode = "all"

	// MatchAny matches documents containing any term.
	MatchAny MatchMode = "any"

	// MatchPhrase matches the terms as one exact phrase.
	MatchPhrase MatchMode = "phrase"

	// MatchExtended passes the query through to the index's own query
	// syntax (boolean operators, prefixes, column filters).
	MatchExtended MatchMode = "extended"
)

// SortMode selects how matches are ordered.
type SortMode string

const (
	// SortRelevance orders by the index's relevance ranking.
	SortRelevance SortMode = "relevance"

	// SortAttrDesc and SortAttrAsc order by a document attribute named in
	// SearchOptions.SortAttr.
	SortAttrDesc SortMode = "attr_desc"
	SortAttrAsc  SortMode = "attr_asc"
)

// SearchOptions controls matching, ordering, and freshness filtering.
type SearchOptions struct {
	Match    MatchMode
	Sort     SortMode
	SortAttr string

	// MaxAge, when nonzero, restricts matches to documents modified within
	// [now - MaxAge, now].
	MaxAge time.Duration
}

// ExcerptConfig controls highlighted-snippet generation.
type ExcerptConfig struct {
	// BeforeMatch and AfterMatch wrap each matched term.
	BeforeMatch string
	AfterMatch  string

	// ChunkSeparator joins discontiguous excerpt fragments.
	ChunkSeparator string

	// Around is the number of context tokens kept around matches.
	Around int

	// Limit caps the excerpt length in characters. 0 means no cap.
	Limit int
}

// DefaultExcerptConfig returns the excerpt formatting used by the search UI.
func DefaultExcerptConfig() ExcerptConfig {
	return ExcerptConfig{
		BeforeMatch:    "<b>",
		AfterMatch:     "</b>",
		ChunkSeparator: " ... ",
		Around:         8,
		Limit:          256,
	}
}

// IndexDoc is the projection of a mark kept in the full-text index.
type IndexDoc struct {
	ID         int64
	Title      string
	URI        string
	Tags       string
	BodyClean  string
	Modified   int64
	Downloaded int64
}

// SearchIndex is the full-text engine over mark projections.
//
// Query's rank order is authoritative: callers must preserve it end-to-end
// when presenting results.
type SearchIndex interface {
	// Query matches q against the index and returns matching mark IDs in
	// rank order.
	Query(ctx context.Context, q string, opts SearchOptions) ([]int64, error)

	// BuildExcerpts builds a highlighted excerpt per body, aligned
	// positionally to bodies. Bodies without a match yield an empty string.
	BuildExcerpts(ctx context.Context, bodies []string, q string, cfg ExcerptConfig) ([]string, error)

	// Upsert inserts or replaces a document keyed by its mark ID.
	Upsert(ctx context.Context, doc *IndexDoc) error

	// DeleteByID removes a document from the index.
	DeleteByID(ctx context.Context, id int64) error
}

// SearchResult is one ranked search hit joined back to its mark row.
type SearchResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Domain     string `json:"domain"`
	URI        string `json:"uri"`
	Tags       string `json:"tags"`
	Modified   int64  `json:"modified"`
	Downloaded bool   `json:"downloaded"`
	Deleted    bool   `json:"deleted"`
	Excerpt    string `json:"excerpt"`
}
