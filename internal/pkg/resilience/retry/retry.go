// Package retry wraps avast/retry-go behind a small interface so callers can
// retry whole operations (e.g. one HyperSync page) with exponential backoff.
//
//	r := retry.New(retry.WithAttempts(5), retry.WithRetryIf(isTransient))
//	err := r.Execute(ctx, func() error { return fetchPage(ctx) })
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/transferscope/internal/pkg/logger"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retries.
type Retry interface {
	// Execute runs operation until it succeeds, the attempts run out, the
	// retry predicate rejects the error or ctx is done.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint             // maximum number of attempts, including the first one
	delay       time.Duration    // base delay between attempts
	maxDelay    time.Duration    // cap for the backoff delay
	lastErrOnly bool             // whether to return only the last error
	retryIf     func(error) bool // decides whether an error is worth retrying
	name        string           // operation name used in retry logs
}

// Option defines a functional option for configuring the retry mechanism.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so Execute returns it immediately instead of retrying.
// The wrapper stays transparent to errors.Is and errors.As.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// New creates a Retry with the given options. Defaults: 3 attempts, 1s base
// delay, 5s max delay, exponential backoff and last-error-only results.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
		retryIf:     func(error) bool { return true },
		name:        "operation",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements Retry.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			var perm *permanentError
			if errors.As(err, &perm) {
				return false
			}
			return r.cfg.retryIf(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn(ctx, "retrying after failure",
				"retry.operation", r.cfg.name,
				"retry.attempt", n+1,
				"error", err,
			)
		}),
	}

	err := retry.Do(operation, options...)

	var perm *permanentError
	if errors.As(err, &perm) {
		return perm.err
	}
	return err
}

// WithAttempts sets the maximum number of attempts (including the initial attempt).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between retry attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether to return only the last error.
// When false, all attempt errors are returned as a retry.Error.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf restricts retries to errors accepted by fn.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// WithName labels retry logs with the operation name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
