package foxmark

import "context"

// HistoryEntry is a past search query. Entries are unique by query text;
// repeating a search increments its use counter instead of duplicating it.
type HistoryEntry struct {
	ID    int64  `json:"id"`
	Query string `json:"query"`
}

// HistoryService records and lists past searches for autocomplete.
type HistoryService interface {
	// AddHistory records a search, incrementing the use counter on repeat.
	AddHistory(ctx context.Context, query string) error

	// History returns past queries, most recently used first.
	History(ctx context.Context, limit int) ([]*HistoryEntry, error)
}
