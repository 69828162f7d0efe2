package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/foxmark"
)

// Compile-time interface verification.
var _ foxmark.HistoryService = (*HistoryService)(nil)

// HistoryService implements foxmark.HistoryService using SQLite.
type HistoryService struct {
	db  *DB
	now func() time.Time
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db, now: time.Now}
}

// AddHistory records a search. Entries are unique by a hash of the query
// text; repeats bump the use counter and freshness instead of inserting.
func (s *HistoryService) AddHistory(ctx context.Context, query string) error {
	if query == "" {
		return foxmark.Errorf(foxmark.EINVALID, "history query required")
	}

	hash := fmt.Sprintf("%016x", xxhash.Sum64String(query))
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (query, query_hash, uses, modified) VALUES (?, ?, 1, ?)
		ON CONFLICT(query_hash) DO UPDATE SET uses = uses + 1, modified = excluded.modified
	`, query, hash, s.now().Unix())
	return err
}

// History returns past queries, most recently used first, ties broken by
// use count.
func (s *HistoryService) History(ctx context.Context, limit int) ([]*foxmark.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query FROM history
		ORDER BY modified DESC, uses DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*foxmark.HistoryEntry
	for rows.Next() {
		var e foxmark.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
