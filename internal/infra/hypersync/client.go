// Package hypersync implements loader.StreamSource on top of the HyperSync
// JSON query API. Each request returns one page of matching logs and
// transactions plus the block to continue from; the client keeps asking until
// it reaches the archive height reported by the server.
package hypersync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/pkg/resilience/retry"
	transport "github.com/gabapcia/transferscope/internal/pkg/transport/http"
	"github.com/gabapcia/transferscope/internal/pkg/x/chflow"
	"github.com/gabapcia/transferscope/internal/query"
	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrUnexpectedStatus is returned when the server answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected hypersync status")

	// ErrInvalidEndpoint is returned for endpoints that are not absolute http(s) URLs.
	ErrInvalidEndpoint = errors.New("invalid hypersync endpoint")
)

const (
	queryPath         = "/query"
	defaultBufferSize = 4
	maxErrorBodyBytes = 512
)

// dataItem is one element of the response "data" array.
type dataItem struct {
	Logs         []transfer.RawLog         `json:"logs"`
	Transactions []transfer.RawTransaction `json:"transactions"`
}

// response is the body returned by POST /query.
type response struct {
	Data               []dataItem `json:"data"`
	ArchiveHeight      *uint64    `json:"archive_height"`
	NextBlock          uint64     `json:"next_block"`
	TotalExecutionTime uint64     `json:"total_execution_time"`
}

func (r response) batch() loader.Batch {
	b := loader.Batch{
		Logs:         make([][]transfer.RawLog, 0, len(r.Data)),
		Transactions: make([][]transfer.RawTransaction, 0, len(r.Data)),
		NextBlock:    r.NextBlock,
	}
	if r.ArchiveHeight != nil {
		b.ArchiveHeight = *r.ArchiveHeight
	}

	for _, item := range r.Data {
		if len(item.Logs) > 0 {
			b.Logs = append(b.Logs, item.Logs)
		}
		if len(item.Transactions) > 0 {
			b.Transactions = append(b.Transactions, item.Transactions)
		}
	}

	return b
}

// done reports whether no page follows this one.
func (r response) done(fromBlock uint64) bool {
	if r.ArchiveHeight == nil {
		return true
	}
	return r.NextBlock >= *r.ArchiveHeight || r.NextBlock <= fromBlock
}

type client struct {
	httpClient *retryablehttp.Client
	retry      retry.Retry
	bufferSize int
}

var _ loader.StreamSource = (*client)(nil)

// fetch posts one query and decodes the page.
func (c *client) fetch(ctx context.Context, endpoint string, descriptor query.Descriptor) (response, error) {
	body, err := json.Marshal(descriptor)
	if err != nil {
		return response{}, retry.Permanent(err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint+queryPath, bytes.NewReader(body))
	if err != nil {
		return response{}, retry.Permanent(err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		err := fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.StatusCode, strings.TrimSpace(string(snippet)))
		if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != http.StatusTooManyRequests {
			return response{}, retry.Permanent(err)
		}
		return response{}, err
	}

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return response{}, retry.Permanent(fmt.Errorf("failed to decode hypersync response: %w", err))
	}

	return data, nil
}

func (c *client) stream(ctx context.Context, endpoint string, descriptor query.Descriptor, eventsCh chan<- loader.StreamEvent) {
	for {
		var page response
		err := c.retry.Execute(ctx, func() error {
			var err error
			page, err = c.fetch(ctx, endpoint, descriptor)
			return err
		})
		if err != nil {
			if ctx.Err() == nil {
				logger.Error(ctx, "hypersync query failed",
					"hypersync.endpoint", endpoint,
					"hypersync.from_block", descriptor.FromBlock,
					"error", err,
				)
			}
			_ = chflow.Send(ctx, eventsCh, loader.StreamEvent{Err: err})
			return
		}

		logger.Debug(ctx, "hypersync page received",
			"hypersync.endpoint", endpoint,
			"hypersync.from_block", descriptor.FromBlock,
			"hypersync.next_block", page.NextBlock,
			"hypersync.execution_time_ms", page.TotalExecutionTime,
		)

		if err := chflow.Send(ctx, eventsCh, loader.StreamEvent{Batch: page.batch()}); err != nil {
			return
		}

		if page.done(descriptor.FromBlock) {
			return
		}

		descriptor = descriptor.WithFromBlock(page.NextBlock)
	}
}

// Stream implements loader.StreamSource. Pages are fetched sequentially; a
// failed page is retried according to the configured retry policy before
// the error is delivered as the final event.
func (c *client) Stream(ctx context.Context, endpoint string, descriptor query.Descriptor) (<-chan loader.StreamEvent, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	eventsCh := make(chan loader.StreamEvent, c.bufferSize)
	go func() {
		defer close(eventsCh)
		c.stream(ctx, strings.TrimRight(endpoint, "/"), descriptor, eventsCh)
	}()

	return eventsCh, nil
}

type config struct {
	httpClient *retryablehttp.Client
	retry      retry.Retry
	bufferSize int
}

// Option configures the client.
type Option func(*config)

// WithHTTPClient replaces the default retrying HTTP client.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithRetry sets the page-level retry policy.
func WithRetry(r retry.Retry) Option {
	return func(cfg *config) {
		cfg.retry = r
	}
}

// WithBufferSize sets how many pages may wait for the consumer.
func WithBufferSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.bufferSize = n
		}
	}
}

// NewClient creates a HyperSync stream source.
func NewClient(opts ...Option) *client {
	cfg := config{
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = transport.NewClient()
	}
	if cfg.retry == nil {
		cfg.retry = retry.New(retry.WithAttempts(1))
	}

	return &client{
		httpClient: cfg.httpClient,
		retry:      cfg.retry,
		bufferSize: cfg.bufferSize,
	}
}
