package mock

import (
	"context"

	"github.com/fwojciec/webcollage"
)

var _ webcollage.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webcollage.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webcollage.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcollage.Response, error) {
	return f.FetchFn(ctx, url)
}
