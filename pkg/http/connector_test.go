package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoPayload struct {
	Text string `json:"text"`
}

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url + "/", Logger: zap.NewNop()}, opts...)
}

func TestConnector_DoRequest_JSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Header.Get("X-Trace"))

		var in echoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(echoPayload{Text: "echo: " + in.Text})
	}))
	defer server.Close()

	c := newTestConnector(server.URL)

	var out echoPayload
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", echoPayload{Text: "hi"}, &out, WithHeader("X-Trace", "abc"))
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out.Text)
}

func TestConnector_DoRequest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"index not found"}`))
	}))
	defer server.Close()

	c := newTestConnector(server.URL)
	err := c.DoRequest(context.Background(), http.MethodGet, "/missing", nil, nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "index not found")

	status, ok := StatusCode(fmt.Errorf("search: %w", err))
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConnector_DoRequest_NetworkErrorOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithRequestTimeout(20*time.Millisecond))
	err := c.DoRequest(context.Background(), http.MethodGet, "/slow", nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, IsTimeout(err))
}

func TestConnector_APIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		w.Write([]byte(`42`))
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithRequestLogging(), WithAPIKey("api-key", "secret"))

	var count int
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/count", nil, &count))
	assert.Equal(t, 42, count)
}

func TestConnector_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"text":"again"}`, string(body))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithRetry(3, retry.Delay(time.Millisecond)))

	var out echoPayload
	require.NoError(t, c.DoRequest(context.Background(), http.MethodPost, "/", echoPayload{Text: "again"}, &out))
	assert.Equal(t, "ok", out.Text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConnector_RetryReturnsLastStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithRetry(2, retry.Delay(time.Millisecond)))
	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConnector_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithRetry(3, retry.Delay(time.Millisecond)))
	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewClient_AppliesTransportOptions(t *testing.T) {
	client := NewClient(
		WithRequestTimeout(3*time.Second),
		WithTLSHandshakeTimeout(4*time.Second),
		WithMaxIdleConnsPerHost(32),
	)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, client.Timeout)
	assert.Equal(t, 4*time.Second, transport.TLSHandshakeTimeout)
	assert.Equal(t, 32, transport.MaxIdleConnsPerHost)
	assert.Nil(t, transport.Proxy)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(&NetworkError{Err: context.DeadlineExceeded}))
	assert.False(t, IsTimeout(errors.New("boom")))
	assert.False(t, IsTimeout(nil))
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("api-key", "secret")
	h.Set("Accept", "application/json")

	redacted := redactHeaders(h)
	assert.Equal(t, "REDACTED", redacted.Get("api-key"))
	assert.Equal(t, "application/json", redacted.Get("Accept"))
	assert.Equal(t, "secret", h.Get("api-key"))
}
