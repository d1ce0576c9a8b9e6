// Package slog provides log/slog decorators for crawl components.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcollage"
)

// Ensure LoggingFetcher implements webcollage.Fetcher.
var _ webcollage.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   webcollage.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webcollage.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *webcollage.Response, err error) {
	defer func(begin time.Time) {
		var contentType string
		if resp != nil {
			contentType = resp.ContentType
		}
		f.logger.Debug("fetch",
			"url", url,
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
