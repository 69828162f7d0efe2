package foxmark

// DownloadEvent describes one step of a mark's download lifecycle within a
// single run: enqueue, then exactly one response or error.
type DownloadEvent struct {
	// RunID correlates events emitted by the same download run.
	RunID string

	URI    string
	MarkID int64

	// Processed and Total count marks processed so far and queued overall.
	// Processed counts outcomes of either kind, not just successes.
	Processed int
	Total     int

	// Err is set when the fetch failed (transport error or bad response).
	Err error
}

// DownloadObserver receives download lifecycle events. Calls are
// fire-and-forget: observer failures never affect fetch outcomes, and
// implementations must be safe for concurrent use, since events for
// different marks arrive from concurrent workers in unspecified order.
type DownloadObserver interface {
	OnEnqueue(event DownloadEvent)
	OnResponse(event DownloadEvent)
}
