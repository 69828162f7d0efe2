package sqlite

import (
	"context"

	"github.com/fwojciec/foxmark"
)

// Compile-time interface verification.
var _ foxmark.TagService = (*TagService)(nil)

// TagService implements foxmark.TagService using SQLite. Tag rows are
// written by MarkService.Register; this service only reads them.
type TagService struct {
	db *DB
}

// NewTagService creates a new TagService.
func NewTagService(db *DB) *TagService {
	return &TagService{db: db}
}

// Tags returns tags, most recently touched and most used first.
func (s *TagService) Tags(ctx context.Context, limit int) ([]*foxmark.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM tags
		ORDER BY modified DESC, uses DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*foxmark.Tag
	for rows.Next() {
		var t foxmark.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}
