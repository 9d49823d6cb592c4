package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDrainBytes caps how much of a response body is read before closing.
const maxDrainBytes = 1 << 20

// connection pooling limits, sized for a handful of endpoints polled every few seconds
const (
	defaultMaxIdleConns        = 50
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 90 * time.Second
)

// HTTPGetter performs a single GET and reports the response status code.
type HTTPGetter interface {
	Get(ctx context.Context, url string, timeout time.Duration) (int, error)
}

// HTTPClient is the default HTTPGetter backed by net/http.
//
// Certificates are verified. Timeouts are applied per request through the
// context, so one client serves endpoints with different timeouts.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates an HTTPClient with connection reuse across cycles.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Get issues a GET to url and returns the status code.
func (c *HTTPClient) Get(ctx context.Context, url string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "sitewatch")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.CloseIdleConnections()
}
