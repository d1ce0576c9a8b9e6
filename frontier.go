package webcollage

import "context"

// URLFrontier is the single authority on which URLs have been scheduled.
// It pairs a visited set with an unbounded queue of pending URLs.
type URLFrontier interface {
	// TryAdmit enqueues the URL if it has never been admitted before.
	// Returns false, without enqueuing, if the URL has already been seen.
	TryAdmit(url string) bool

	// Take blocks until a URL is available and removes it from the queue.
	// Returns an error if the context is canceled first.
	Take(ctx context.Context) (string, error)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen returns true if the URL has been admitted at any point.
	Seen(url string) bool
}

// VisitedSet records URLs already admitted to the frontier.
// Implementations need not be safe for concurrent use; the frontier
// serializes every call.
type VisitedSet interface {
	// Visit adds the URL and reports whether it was absent before.
	Visit(url string) bool

	// Contains reports whether the URL has been visited.
	Contains(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}
