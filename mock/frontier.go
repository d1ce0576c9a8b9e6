package mock

import (
	"context"

	"github.com/fwojciec/webcollage"
)

var _ webcollage.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of webcollage.URLFrontier.
type URLFrontier struct {
	TryAdmitFn func(url string) bool
	TakeFn     func(ctx context.Context) (string, error)
	LenFn      func() int
	SeenFn     func(url string) bool
}

func (f *URLFrontier) TryAdmit(url string) bool {
	return f.TryAdmitFn(url)
}

func (f *URLFrontier) Take(ctx context.Context) (string, error) {
	return f.TakeFn(ctx)
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ webcollage.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of webcollage.VisitedSet.
type VisitedSet struct {
	VisitFn    func(url string) bool
	ContainsFn func(url string) bool
	LenFn      func() int
}

func (s *VisitedSet) Visit(url string) bool {
	return s.VisitFn(url)
}

func (s *VisitedSet) Contains(url string) bool {
	return s.ContainsFn(url)
}

func (s *VisitedSet) Len() int {
	return s.LenFn()
}
