// Package http provides an HTTP-based implementation of webcollage.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webcollage"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = webcollage.DefaultFetchTimeout

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "webcollage/1.0"

// Ensure Fetcher implements webcollage.Fetcher at compile time.
var _ webcollage.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain GET requests.
// Redirects are followed by the underlying http.Client.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests, including reading the body.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a GET for the URL. Any status other than 200 is an EFETCH
// error. The caller must close the returned body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcollage.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webcollage.Errorf(webcollage.EMALFORMED, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, webcollage.Errorf(webcollage.EFETCH, "GET %s: %v", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		resp.Body.Close()
		return nil, webcollage.Errorf(webcollage.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	return &webcollage.Response{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}
