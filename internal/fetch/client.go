// Package fetch implements the HTTP client side of a status run: one GET
// per endpoint, a per-request timeout, and a typed error for every way a
// fetch can fail ([TransportError], [HTTPStatusError], [PayloadError]).
//
// A failed fetch never produces a partial record; callers get either a
// complete [status.Record] or an error carrying the endpoint identity.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arunsingh/query-tool-statuspage/internal/status"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits to prevent resource exhaustion when a run
// covers a large fleet
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// statusPath is the well-known route every fleet endpoint exposes.
const statusPath = "/status"

// Client issues status fetches against fleet endpoints.
//
// The client applies its timeout per request via context cancellation
// rather than as a global http.Client timeout, and caps response bodies at
// 1MB. The underlying transport pools connections so repeated fetches to
// the same host reuse them.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a [Client] whose fetches are each bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		timeout: timeout,
	}
}

// statusURL builds the /status URL for an endpoint entry. Entries are
// normally bare host or host:port addresses; an entry that already carries
// a scheme is used as-is.
func statusURL(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return strings.TrimRight(endpoint, "/") + statusPath
	}
	return "http://" + endpoint + statusPath
}

// Fetch performs one GET against the endpoint's /status route and parses
// the response into a [status.Record].
//
// Exactly one attempt is made; there is no retry. Failures are returned as
// one of the package's typed errors, each carrying the endpoint identity:
//   - [TransportError] for connection or timeout failures
//   - [HTTPStatusError] for non-2xx responses
//   - [PayloadError] for bodies that do not parse into a complete record
func (c *Client) Fetch(ctx context.Context, endpoint string) (status.Record, error) {
	if endpoint == "" {
		return status.Record{}, &TransportError{Endpoint: endpoint, Err: errors.New("empty endpoint address")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL(endpoint), nil)
	if err != nil {
		return status.Record{}, &TransportError{Endpoint: endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return status.Record{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return status.Record{}, &HTTPStatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return status.Record{}, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response body: %w", err)}
	}

	rec, err := status.Parse(body)
	if err != nil {
		return status.Record{}, &PayloadError{Endpoint: endpoint, Err: err}
	}
	return rec, nil
}

// Close releases idle connections in the client's pool. The client remains
// usable afterwards; new connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
