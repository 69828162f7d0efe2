package mock

import (
	"context"

	"github.com/fwojciec/foxmark"
)

var _ foxmark.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is a mock implementation of foxmark.SearchIndex.
type SearchIndex struct {
	QueryFn         func(ctx context.Context, q string, opts foxmark.SearchOptions) ([]int64, error)
	BuildExcerptsFn func(ctx context.Context, bodies []string, q string, cfg foxmark.ExcerptConfig) ([]string, error)
	UpsertFn        func(ctx context.Context, doc *foxmark.IndexDoc) error
	DeleteByIDFn    func(ctx context.Context, id int64) error
}

func (ix *SearchIndex) Query(ctx context.Context, q string, opts foxmark.SearchOptions) ([]int64, error) {
	return ix.QueryFn(ctx, q, opts)
}

func (ix *SearchIndex) BuildExcerpts(ctx context.Context, bodies []string, q string, cfg foxmark.ExcerptConfig) ([]string, error) {
	return ix.BuildExcerptsFn(ctx, bodies, q, cfg)
}

func (ix *SearchIndex) Upsert(ctx context.Context, doc *foxmark.IndexDoc) error {
	return ix.UpsertFn(ctx, doc)
}

func (ix *SearchIndex) DeleteByID(ctx context.Context, id int64) error {
	return ix.DeleteByIDFn(ctx, id)
}
