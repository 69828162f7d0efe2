package mock

import "github.com/fwojciec/foxmark"

var _ foxmark.DownloadObserver = (*DownloadObserver)(nil)

// DownloadObserver is a mock implementation of foxmark.DownloadObserver.
type DownloadObserver struct {
	OnEnqueueFn  func(event foxmark.DownloadEvent)
	OnResponseFn func(event foxmark.DownloadEvent)
}

func (o *DownloadObserver) OnEnqueue(event foxmark.DownloadEvent) {
	o.OnEnqueueFn(event)
}

func (o *DownloadObserver) OnResponse(event foxmark.DownloadEvent) {
	o.OnResponseFn(event)
}
