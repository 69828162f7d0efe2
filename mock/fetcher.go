package mock

import (
	"context"

	"github.com/fwojciec/foxmark"
)

var _ foxmark.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of foxmark.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*foxmark.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*foxmark.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ foxmark.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of foxmark.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
