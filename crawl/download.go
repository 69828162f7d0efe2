// Package crawl provides the bookmark download pipeline: it drives
// bounded-concurrency HTTP fetches for all marks pending download, feeds
// responses through the content normalizer into storage, and records each
// mark's enqueue/response lifecycle to an observer.
package crawl

import (
	"context"
	"encoding/json"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/foxmark"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight fetches when no limit is configured.
const DefaultConcurrency = 8

// DefaultPerItemBudget is the wall-clock budget granted per queued mark.
// The whole run is bounded by budget times queue length so a stuck queue
// can never hang indefinitely.
const DefaultPerItemBudget = 2 * time.Second

// Downloader fetches HTML for all pending marks.
//
// Per-mark state within a run moves Pending -> InFlight -> Success/Failed;
// a mark never returns to Pending within the same run. Failed marks become
// eligible again only after an external action clears their error state.
type Downloader struct {
	Marks      foxmark.MarkService
	Fetcher    foxmark.Fetcher
	Normalizer foxmark.Normalizer

	// Observer receives lifecycle events. Nil disables reporting.
	Observer foxmark.DownloadObserver

	// RateLimiter, when set, paces requests per target domain.
	RateLimiter foxmark.DomainLimiter

	// Concurrency bounds in-flight fetches. Zero means DefaultConcurrency.
	Concurrency int

	// PerItemBudget scales the run's wall-clock budget. Zero means
	// DefaultPerItemBudget.
	PerItemBudget time.Duration
}

// responseMeta is the serialized error detail stored for fetches that
// connected but returned a bad response.
type responseMeta struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Length      int    `json:"length"`
	FinalURL    string `json:"finalUrl"`
}

// Run downloads every pending mark and returns the processed count: marks
// with a recorded outcome of either kind, not just successes. An empty
// queue returns 0 without error.
//
// On budget exhaustion, in-flight requests are abandoned and unprocessed
// marks keep their pending state for the next run; they are neither
// counted nor marked failed.
func (d *Downloader) Run(ctx context.Context) (int, error) {
	pending, err := d.Marks.MarksToDownload(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	budget := d.PerItemBudget
	if budget <= 0 {
		budget = DefaultPerItemBudget
	}
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(len(pending))*budget)
	defer cancel()

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	runID := uuid.New().String()
	total := len(pending)
	var processed atomic.Int64

	for _, mark := range pending {
		d.emitEnqueue(foxmark.DownloadEvent{
			RunID:  runID,
			URI:    mark.URI,
			MarkID: mark.ID,
			Total:  total,
		})
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(concurrency)

	for _, mark := range pending {
		g.Go(func() error {
			d.process(gctx, runID, mark, total, &processed)
			// Per-mark failures are recorded as mark state, never
			// propagated; propagation would cancel the whole group.
			return nil
		})
	}
	_ = g.Wait()

	return int(processed.Load()), nil
}

// process fetches one mark and records its outcome. A canceled context
// means the run budget expired: the mark is abandoned without a recorded
// outcome so the next run picks it up again.
func (d *Downloader) process(ctx context.Context, runID string, mark *foxmark.MarkRef, total int, processed *atomic.Int64) {
	if ctx.Err() != nil {
		return
	}

	if d.RateLimiter != nil {
		if u, err := url.Parse(mark.URI); err == nil {
			if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
				return
			}
		}
	}

	res, err := d.Fetcher.Fetch(ctx, mark.URI)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Transport failure: DNS, TLS, connect, timeout.
		d.finish(ctx, runID, mark, total, processed, err.Error(), err)
		return
	}

	if res.StatusCode != 200 || len(res.Body) == 0 {
		meta, _ := json.Marshal(responseMeta{
			Status:      res.StatusCode,
			ContentType: res.ContentType,
			Length:      len(res.Body),
			FinalURL:    res.FinalURL,
		})
		d.finish(ctx, runID, mark, total, processed, string(meta),
			foxmark.Errorf(foxmark.EINTERNAL, "http %d for %s", res.StatusCode, mark.URI))
		return
	}

	title := ExtractTitle(res.Body)
	clean, err := d.Normalizer.Clean(res.Body)
	if err != nil {
		d.finish(ctx, runID, mark, total, processed, err.Error(), err)
		return
	}

	var saveErr error
	if err := d.Marks.SaveSuccess(ctx, mark.ID, validUTF8(res.Body), clean, title); err != nil {
		// Storage failure for one mark never aborts the batch.
		saveErr = err
	}

	processed.Add(1)
	d.emitResponse(foxmark.DownloadEvent{
		RunID:     runID,
		URI:       mark.URI,
		MarkID:    mark.ID,
		Processed: int(processed.Load()),
		Total:     total,
		Err:       saveErr,
	})
}

// finish records a failed outcome: the message becomes the mark's error
// state and a response event carries the cause.
func (d *Downloader) finish(ctx context.Context, runID string, mark *foxmark.MarkRef, total int, processed *atomic.Int64, message string, cause error) {
	if err := d.Marks.SaveError(ctx, mark.ID, message); err != nil {
		cause = err
	}

	processed.Add(1)
	d.emitResponse(foxmark.DownloadEvent{
		RunID:     runID,
		URI:       mark.URI,
		MarkID:    mark.ID,
		Processed: int(processed.Load()),
		Total:     total,
		Err:       cause,
	})
}

func (d *Downloader) emitEnqueue(event foxmark.DownloadEvent) {
	if d.Observer != nil {
		d.Observer.OnEnqueue(event)
	}
}

func (d *Downloader) emitResponse(event foxmark.DownloadEvent) {
	if d.Observer != nil {
		d.Observer.OnResponse(event)
	}
}
