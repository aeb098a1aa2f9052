// Package http builds the retrying HTTP client used to talk to HyperSync
// endpoints. It wraps HashiCorp's retryablehttp.Client and exposes functional
// options for timeouts, retry behavior and static request headers.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gabapcia/transferscope/internal/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
)

// config holds internal settings for the HTTP client.
type config struct {
	timeout      time.Duration     // maximum duration for a single HTTP request
	retryWaitMin time.Duration     // minimum delay between retry attempts
	retryWaitMax time.Duration     // maximum delay between retry attempts
	retryMax     int               // maximum number of retry attempts
	headers      map[string]string // headers set on every outgoing request
}

// Option defines a functional option for configuring the HTTP client.
type Option func(*config)

// headerTransport sets static headers before handing the request to next.
type headerTransport struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.next.RoundTrip(req)
}

// logRetry reports every attempt after the first one.
func logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}
	logger.Warn(context.Background(), "retrying http request",
		"http.method", req.Method,
		"http.url", req.URL.Redacted(),
		"http.attempt", attempt,
	)
}

// NewClient creates and returns a retryablehttp.Client configured with
// the provided options. Once retries run out the last response is returned
// as-is, so callers can still inspect its status. If no options are given,
// default values are used:
//
//   - timeout:      5 seconds
//   - retryWaitMin: 1 second
//   - retryWaitMax: 5 seconds
//   - retryMax:     2 retries
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
		headers:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RequestLogHook = logRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax

	if len(cfg.headers) > 0 {
		next := client.HTTPClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		client.HTTPClient.Transport = &headerTransport{headers: cfg.headers, next: next}
	}

	return client
}

// WithTimeout sets the maximum duration allowed for a single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWaitMin sets the minimum delay between retry attempts.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

// WithRetryWaitMax sets the maximum delay between retry attempts.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets the maximum number of retry attempts for failed requests.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}

// WithHeader sets a header on every request. An empty value is ignored.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if value != "" {
			c.headers[key] = value
		}
	}
}

// WithBearerToken authenticates every request with the given token.
// An empty token leaves requests unauthenticated.
func WithBearerToken(token string) Option {
	if token == "" {
		return func(*config) {}
	}
	return WithHeader("Authorization", "Bearer "+token)
}
