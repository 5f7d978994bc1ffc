package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds one dump retrieval end to end, including reading
// the body. The dump for a full suite is a few megabytes; a stalled
// transfer past this point is treated as failed.
const DefaultTimeout = 60 * time.Second

// FetchError reports a failed dataset retrieval: transport failure, non-2xx
// response or timeout. It is fatal for the whole query — there is no retry.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves the benchmark results dump.
type Client struct {
	http *http.Client
}

// NewClient returns a Client whose requests are bounded by timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch performs the single GET of the dump URL and returns the response
// body for streaming consumption. The caller must close it. Any failure is
// returned as *FetchError.
func (c *Client) Fetch(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused, then fail.
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
		resp.Body.Close()
		return nil, &FetchError{URL: u.String(), StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
