// Package http provides the HTTP implementation of foxmark.Fetcher and
// the JSONP API server consumed by the search UI.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/foxmark"
)

// DefaultFetchTimeout is the default timeout for a single page fetch,
// covering connect through full body read.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects caps redirect following per fetch.
const DefaultMaxRedirects = 5

// userAgent identifies the crawler to fetched sites.
const userAgent = "foxmark/1.0 (+https://github.com/fwojciec/foxmark)"

// Ensure Fetcher implements foxmark.Fetcher at compile time.
var _ foxmark.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP requests: redirect-following,
// timeout-bounded, response captured fully in memory. It does not execute
// JavaScript.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the redirect cap per fetch.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url. Transport failures return a non-nil
// error; an HTTP response of any status returns a result so the caller
// can record its metadata.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*foxmark.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &foxmark.FetchResult{
		StatusCode:  resp.StatusCode,
		Body:        body,
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
