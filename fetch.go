package foxmark

import "context"

// FetchResult is a completed HTTP exchange. The body is captured fully in
// memory; redirects have already been followed.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	FinalURL    string
	ContentType string
}

// Fetcher retrieves pages over HTTP.
// A non-nil error means the transport failed (DNS, TLS, connect, timeout);
// HTTP-level failures (non-200 status) return a result and a nil error so
// callers can record response metadata.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
