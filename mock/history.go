package mock

import (
	"context"

	"github.com/fwojciec/foxmark"
)

var _ foxmark.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of foxmark.HistoryService.
type HistoryService struct {
	AddHistoryFn func(ctx context.Context, query string) error
	HistoryFn    func(ctx context.Context, limit int) ([]*foxmark.HistoryEntry, error)
}

func (s *HistoryService) AddHistory(ctx context.Context, query string) error {
	return s.AddHistoryFn(ctx, query)
}

func (s *HistoryService) History(ctx context.Context, limit int) ([]*foxmark.HistoryEntry, error) {
	return s.HistoryFn(ctx, limit)
}

var _ foxmark.TagService = (*TagService)(nil)

// TagService is a mock implementation of foxmark.TagService.
type TagService struct {
	TagsFn func(ctx context.Context, limit int) ([]*foxmark.Tag, error)
}

func (s *TagService) Tags(ctx context.Context, limit int) ([]*foxmark.Tag, error) {
	return s.TagsFn(ctx, limit)
}
