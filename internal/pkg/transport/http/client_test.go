package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("should use defaults when no options are provided", func(t *testing.T) {
		client := NewClient()

		require.NotNil(t, client)
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 1*time.Second, client.RetryWaitMin)
		assert.Equal(t, 5*time.Second, client.RetryWaitMax)
		assert.Equal(t, 2, client.RetryMax)
		assert.NotNil(t, client.RequestLogHook)
	})

	t.Run("should apply the provided options", func(t *testing.T) {
		client := NewClient(
			WithTimeout(30*time.Second),
			WithRetryWaitMin(200*time.Millisecond),
			WithRetryWaitMax(10*time.Second),
			WithRetryMax(5),
		)

		assert.Equal(t, 30*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 200*time.Millisecond, client.RetryWaitMin)
		assert.Equal(t, 10*time.Second, client.RetryWaitMax)
		assert.Equal(t, 5, client.RetryMax)
	})

	t.Run("should send the bearer token on every request", func(t *testing.T) {
		var got atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.Store(r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(WithBearerToken("s3cret"))
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "Bearer s3cret", got.Load())
	})

	t.Run("should not authenticate without a token", func(t *testing.T) {
		var got atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.Store(r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(WithBearerToken(""))
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "", got.Load())
		_, wrapped := client.HTTPClient.Transport.(*headerTransport)
		assert.False(t, wrapped)
	})

	t.Run("should retry server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(WithRetryWaitMin(time.Millisecond), WithRetryWaitMax(time.Millisecond))
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 2, calls.Load())
	})
}

func TestWithHeader(t *testing.T) {
	t.Run("should ignore empty values", func(t *testing.T) {
		cfg := &config{headers: map[string]string{}}

		WithHeader("X-Empty", "")(cfg)
		WithHeader("User-Agent", "transferscope")(cfg)

		assert.Equal(t, map[string]string{"User-Agent": "transferscope"}, cfg.headers)
	})
}

func TestNewClient_ExhaustedRetries(t *testing.T) {
	t.Run("should hand back the last response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(WithRetryMax(1), WithRetryWaitMin(time.Millisecond), WithRetryWaitMax(time.Millisecond))
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
