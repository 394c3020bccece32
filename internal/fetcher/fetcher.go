package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockWatch/internal/model"
)

// Client issues single HTTP GETs against the upstream quote feeds. It carries
// no retry logic; the scheduler's next tick is the only retry path.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with the given timeout and optional proxy URL.
func New(timeout time.Duration, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: "Mozilla/5.0",
	}
}

// Fetch performs one GET and returns the raw body. Cancelling ctx aborts the
// call mid-flight; an aborted call returns an error and no body.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.WrapFeedError(model.ErrTransport, err, "build request %s", rawURL)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, model.WrapFeedError(model.ErrTransport, err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.WrapFeedError(model.ErrTransport, err, "read body %s", rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewFeedError(model.ErrTransport, "fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return body, nil
}
