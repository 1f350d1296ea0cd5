package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the published form endpoint
	DefaultURL = "https://run.mocky.io/v3/1800b96f-c579-49e5-b0b8-49856a36ce39"

	// maxBodyBytes caps the size of a form payload
	maxBodyBytes = 8 << 20
)

// TransportError reports a failed retrieval: the endpoint could not be
// reached or did not answer with a 2xx status.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client retrieves the raw form payload
type Client struct {
	url  string
	http Doer
}

// NewClient creates a client for url. No timeout is set beyond what the
// transport applies; pass WithHTTPClient to change that.
func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		url:  url,
		http: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// URL returns the endpoint being fetched
func (c *Client) URL() string {
	return c.url
}

// Fetch performs a single GET and returns the response body
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, &TransportError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return body, nil
}

// IsAvailable checks if the endpoint answers with a status Fetch would accept
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultURL
	}

	// Try to connect with a short timeout
	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return successful(resp.StatusCode)
}

func successful(status int) bool {
	return status >= 200 && status <= 299
}
