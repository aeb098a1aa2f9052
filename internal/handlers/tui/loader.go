package tui

import (
	"context"

	"github.com/gabapcia/transferscope/internal/loader"
)

// Loader runs the wallet queries started from the dashboard.
type Loader interface {
	Load(ctx context.Context, req loader.Request) (loader.Result, error)
	Cancel()
}

var _ Loader = (loader.Service)(nil)

// ForwardProgress returns a loader.ProgressHandler that hands progress to the
// dashboard through updates. Reports are dropped while updates is full.
func ForwardProgress(updates chan<- loader.Progress) loader.ProgressHandler {
	return func(_ context.Context, p loader.Progress) {
		select {
		case updates <- p:
		default:
		}
	}
}
