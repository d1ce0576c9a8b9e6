package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/webcollage"
)

// Compile-time interface verification.
var _ webcollage.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier: a visited set plus an unbounded
// queue of pending URLs. It is safe for concurrent use by multiple goroutines.
//
// The check against the visited set and the enqueue happen under one lock,
// so a URL is queued at most once no matter how many workers discover it.
type Frontier struct {
	mu      sync.Mutex
	visited webcollage.VisitedSet
	queue   []string

	// ready holds a wake-up token whenever the queue may be non-empty.
	ready chan struct{}
}

// NewFrontier creates a new Frontier backed by the given visited set.
// A nil set selects an exact VisitedSet.
func NewFrontier(visited webcollage.VisitedSet) *Frontier {
	if visited == nil {
		visited = NewVisitedSet()
	}
	return &Frontier{
		visited: visited,
		ready:   make(chan struct{}, 1),
	}
}

// TryAdmit enqueues the URL if it has never been admitted before.
// Returns false if the URL has already been seen.
func (f *Frontier) TryAdmit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.visited.Visit(url) {
		return false
	}
	f.queue = append(f.queue, url)
	f.signal()
	return true
}

// Take removes and returns the oldest pending URL, blocking while the
// queue is empty. Returns the context's error if it is canceled first.
func (f *Frontier) Take(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		f.mu.Lock()
		if len(f.queue) > 0 {
			url := f.queue[0]
			f.queue[0] = ""
			f.queue = f.queue[1:]
			if len(f.queue) > 0 {
				// Pass the wake-up on to the next waiting worker.
				f.signal()
			}
			f.mu.Unlock()
			return url, nil
		}
		f.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-f.ready:
		}
	}
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been admitted at any point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Contains(url)
}

// Visited returns the number of URLs ever admitted.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Len()
}

// signal leaves a wake-up token unless one is already pending.
// Must be called with f.mu held.
func (f *Frontier) signal() {
	select {
	case f.ready <- struct{}{}:
	default:
	}
}
