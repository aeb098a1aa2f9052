// Package loader runs one wallet query at a time against a stream source and
// classifies what comes back into a fresh transfer.Store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/pkg/x/chflow"
	"github.com/gabapcia/transferscope/internal/query"
	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/transferscope/internal/loader"

var (
	// ErrSuperseded ends a run when a newer run starts.
	ErrSuperseded = errors.New("load superseded by a newer query")

	// ErrCanceled ends a run canceled through Service.Cancel.
	ErrCanceled = errors.New("load canceled")
)

// Request identifies one run of a query.
type Request struct {
	ID    uuid.UUID
	Query query.WalletQuery
}

// NewRequest wraps q with a fresh time-ordered run ID.
func NewRequest(q query.WalletQuery) Request {
	return Request{ID: newRunID(), Query: q}
}

// Progress reports how far a run has got. Stats are cumulative.
type Progress struct {
	RunID         uuid.UUID
	Batches       int
	NextBlock     uint64
	ArchiveHeight uint64
	Stats         transfer.Stats
}

// Result is the outcome of a completed run.
type Result struct {
	RunID    uuid.UUID
	Query    query.WalletQuery
	Store    *transfer.Store
	Stats    transfer.Stats
	Batches  int
	Duration time.Duration
}

// Service loads wallet transfers. Only one run is active at a time.
type Service interface {
	// Load runs req to completion and returns its results. Starting a new
	// Load cancels the previous one, which then fails with ErrSuperseded.
	Load(ctx context.Context, req Request) (Result, error)

	// Cancel stops the active run, if any. It fails with ErrCanceled.
	Cancel()
}

// ProgressHandler receives progress after each classified batch.
type ProgressHandler func(ctx context.Context, p Progress)

// service is the default Service implementation.
type service struct {
	mu     sync.Mutex              // guards active and cancel
	active uuid.UUID               // ID of the running load, uuid.Nil when idle
	cancel context.CancelCauseFunc // cancels the running load with a cause

	source   StreamSource    // where batches come from
	progress ProgressHandler // optional, called after every batch
	tracer   trace.Tracer    // one span per load
	metrics  *metrics        // load, batch and classification counters
}

var _ Service = (*service)(nil)

// begin registers id as the active run, canceling the previous one with
// ErrSuperseded, and returns the context the run must use.
func (s *service) begin(ctx context.Context, id uuid.UUID) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	s.active = id
	s.cancel = cancel
	return ctx
}

// end releases the run context of id. It does nothing when a newer run has
// already replaced it.
func (s *service) end(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != id {
		return
	}
	s.cancel(nil)
	s.active = uuid.Nil
	s.cancel = nil
}

// Cancel stops the active run with ErrCanceled.
func (s *service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel(ErrCanceled)
	}
}

// Load builds the descriptor for req, streams it and classifies every batch
// into a fresh Store.
func (s *service) Load(ctx context.Context, req Request) (Result, error) {
	if req.ID == uuid.Nil {
		req.ID = newRunID()
	}

	descriptor, err := query.Build(req.Query)
	if err != nil {
		return Result{}, err
	}

	ctx = s.begin(ctx, req.ID)
	defer s.end(req.ID)

	ctx, span := s.tracer.Start(ctx, "loader.Load", trace.WithAttributes(
		attribute.String("run.id", req.ID.String()),
		attribute.String("query.chain", req.Query.Chain.String()),
		attribute.Int64("query.from_block", int64(descriptor.FromBlock)),
	))
	defer span.End()

	logger.Info(ctx, "load started",
		"run.id", req.ID,
		"query.address", req.Query.Address,
		"query.chain", req.Query.Chain.String(),
		"query.from_block", descriptor.FromBlock,
	)

	started := time.Now()
	result, err := s.run(ctx, req, descriptor)
	result.Duration = time.Since(started)

	status := "ok"
	if err != nil {
		status = "failed"
		if errors.Is(err, ErrSuperseded) || errors.Is(err, ErrCanceled) {
			status = "canceled"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn(ctx, "load ended without results",
			"run.id", req.ID,
			"load.status", status,
			"error", err,
		)
		s.metrics.recordLoad(ctx, status)
		return Result{}, err
	}

	s.metrics.recordLoad(ctx, status)
	logger.Info(ctx, "load finished",
		"run.id", req.ID,
		"load.batches", result.Batches,
		"load.native", result.Stats.Native,
		"load.erc20", result.Stats.ERC20,
		"load.erc721", result.Stats.ERC721,
		"load.discarded", result.Stats.Discarded,
		"load.duration", result.Duration,
	)

	return result, nil
}

// run consumes the stream until it is exhausted, fails or ctx ends. A stream
// cut short by ctx returns the cancellation cause instead of partial results.
func (s *service) run(ctx context.Context, req Request, descriptor query.Descriptor) (Result, error) {
	events, err := s.source.Stream(ctx, req.Query.Chain.URL(), descriptor)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open stream: %w", err)
	}

	var (
		store      = transfer.NewStore()
		classifier = transfer.NewClassifier(req.Query.TransferFilter())
		progress   = Progress{RunID: req.ID}
	)

	for {
		event, err := chflow.Receive(ctx, events)
		if errors.Is(err, chflow.ErrClosed) {
			// sources close the channel when ctx ends, so a close can race the cancellation
			err = context.Cause(ctx)
			if err == nil {
				break
			}
		}
		if err != nil {
			return Result{}, err
		}

		if event.Err != nil {
			return Result{}, fmt.Errorf("stream failed after %d batches: %w", progress.Batches, event.Err)
		}

		stats := classifier.ClassifyBatch(store, event.Batch.Logs, event.Batch.Transactions)
		s.metrics.recordBatch(ctx, stats)

		progress.Batches++
		progress.NextBlock = event.Batch.NextBlock
		progress.ArchiveHeight = event.Batch.ArchiveHeight
		progress.Stats.Add(stats)

		logger.Debug(ctx, "batch classified",
			"run.id", req.ID,
			"batch.logs", len(event.Batch.Logs),
			"batch.transactions", len(event.Batch.Transactions),
			"batch.next_block", event.Batch.NextBlock,
		)

		if s.progress != nil {
			s.progress(ctx, progress)
		}
	}

	return Result{
		RunID:   req.ID,
		Query:   req.Query,
		Store:   store,
		Stats:   progress.Stats,
		Batches: progress.Batches,
	}, nil
}

// newRunID returns a UUIDv7 so run IDs sort by start time, falling back to v4.
func newRunID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// config holds the options of New.
type config struct {
	progress ProgressHandler
}

// Option configures the service.
type Option func(*config)

// WithProgressHandler registers h to be called after every batch.
func WithProgressHandler(h ProgressHandler) Option {
	return func(c *config) {
		c.progress = h
	}
}

// New creates a Service reading from source.
func New(source StreamSource, opts ...Option) *service {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		source:   source,
		progress: cfg.progress,
		tracer:   otel.Tracer(instrumentationName),
		metrics:  newMetrics(otel.Meter(instrumentationName)),
	}
}
