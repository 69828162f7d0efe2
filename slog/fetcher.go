package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/foxmark"
)

// Ensure LoggingFetcher implements foxmark.Fetcher.
var _ foxmark.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   foxmark.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next foxmark.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the exchange.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *foxmark.FetchResult, err error) {
	defer func(begin time.Time) {
		status := 0
		size := 0
		if res != nil {
			status = res.StatusCode
			size = len(res.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
