// Package bloom provides a fixed-memory visited set backed by a Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/webcollage"
)

var _ webcollage.VisitedSet = (*VisitedSet)(nil)

// VisitedSet records URLs in a Bloom filter. Memory stays constant no
// matter how long the crawl runs, at the price of false positives: a
// URL never admitted may be reported as visited and is then skipped.
// False negatives are impossible, so no URL is ever admitted twice.
type VisitedSet struct {
	f     *bloom.BloomFilter
	count int
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs
// with the given false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Visit adds the URL and reports whether it was absent before.
func (s *VisitedSet) Visit(url string) bool {
	if s.f.TestAndAddString(url) {
		return false
	}
	s.count++
	return true
}

// Contains reports whether the URL might have been visited.
func (s *VisitedSet) Contains(url string) bool {
	return s.f.TestString(url)
}

// Len returns the number of URLs accepted by Visit.
func (s *VisitedSet) Len() int {
	return s.count
}

// EstimatedCount returns the filter's own estimate of how many distinct
// URLs it holds.
func (s *VisitedSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
