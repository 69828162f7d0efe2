// Package slog provides log/slog-based decorators and observers for
// foxmark interfaces.
package slog

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/foxmark"
)

// Ensure Observer implements foxmark.DownloadObserver.
var _ foxmark.DownloadObserver = (*Observer)(nil)

// Observer logs download lifecycle events. Safe for concurrent use; the
// underlying slog.Logger handles synchronization.
type Observer struct {
	logger *slog.Logger
}

// NewObserver creates a new Observer.
func NewObserver(logger *slog.Logger) *Observer {
	return &Observer{logger: logger}
}

// OnEnqueue logs a mark entering the download queue.
func (o *Observer) OnEnqueue(event foxmark.DownloadEvent) {
	o.logger.Debug("download queued",
		"run", event.RunID,
		"id", event.MarkID,
		"uri", event.URI,
		"total", event.Total,
	)
}

// OnResponse logs a download outcome with run progress.
func (o *Observer) OnResponse(event foxmark.DownloadEvent) {
	if event.Err != nil {
		o.logger.Warn("download failed",
			"run", event.RunID,
			"id", event.MarkID,
			"uri", event.URI,
			"progress", progress(event),
			"err", event.Err,
		)
		return
	}
	o.logger.Info("download saved",
		"run", event.RunID,
		"id", event.MarkID,
		"uri", event.URI,
		"progress", progress(event),
	)
}

func progress(event foxmark.DownloadEvent) string {
	return fmt.Sprintf("%d/%d", event.Processed, event.Total)
}
