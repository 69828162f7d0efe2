package slog_test

import (
	"bytes"
	"context"
	"errors"
	stdslog "log/slog"
	"testing"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/mock"
	foxslog "github.com/fwojciec/foxmark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *stdslog.Logger {
	return stdslog.New(stdslog.NewTextHandler(buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))
}

func TestObserver(t *testing.T) {
	t.Parallel()

	t.Run("logs successes with progress", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		o := foxslog.NewObserver(newLogger(&buf))

		o.OnResponse(foxmark.DownloadEvent{
			RunID: "run-1", MarkID: 7, URI: "http://a.com/", Processed: 3, Total: 9,
		})

		out := buf.String()
		assert.Contains(t, out, "download saved")
		assert.Contains(t, out, "progress=3/9")
		assert.Contains(t, out, "uri=http://a.com/")
	})

	t.Run("logs failures at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		o := foxslog.NewObserver(newLogger(&buf))

		o.OnResponse(foxmark.DownloadEvent{
			RunID: "run-1", MarkID: 7, URI: "http://a.com/", Processed: 1, Total: 9,
			Err: errors.New("connection refused"),
		})

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "download failed")
		assert.Contains(t, out, "connection refused")
	})
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	next := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*foxmark.FetchResult, error) {
			return &foxmark.FetchResult{StatusCode: 200, Body: []byte("hi")}, nil
		},
	}
	f := foxslog.NewLoggingFetcher(next, newLogger(&buf))

	res, err := f.Fetch(context.Background(), "http://a.com/")
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)

	out := buf.String()
	assert.Contains(t, out, "msg=fetch")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "bytes=2")
}
