package loader

import (
	"context"

	"github.com/gabapcia/transferscope/internal/query"
	"github.com/gabapcia/transferscope/internal/transfer"
)

// Batch is one page of results from a stream source.
type Batch struct {
	Logs          [][]transfer.RawLog
	Transactions  [][]transfer.RawTransaction
	NextBlock     uint64 // first block not covered yet
	ArchiveHeight uint64 // highest block the source knows about
}

// StreamEvent carries either a Batch or the error that ended the stream.
type StreamEvent struct {
	Batch Batch
	Err   error
}

// StreamSource pages through the records matching a query descriptor.
type StreamSource interface {
	// Stream starts fetching from endpoint and returns a channel of events.
	// The channel is closed once the source has caught up with its archive
	// height, after an event carrying Err, or when ctx is canceled.
	Stream(ctx context.Context, endpoint string, descriptor query.Descriptor) (<-chan StreamEvent, error)
}
