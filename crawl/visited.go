package crawl

import "github.com/fwojciec/webcollage"

var _ webcollage.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is an exact, map-backed set of URLs keyed by their literal
// string form. It grows for the lifetime of the crawl and never shrinks.
type VisitedSet struct {
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Visit adds the URL and reports whether it was absent before.
func (s *VisitedSet) Visit(url string) bool {
	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Contains reports whether the URL has been visited.
func (s *VisitedSet) Contains(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
