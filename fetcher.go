package webcollage

import (
	"context"
	"io"
	"strings"
)

// Response is the outcome of a successful fetch.
// The caller must close Body.
type Response struct {
	// URL is the address the content was served from, after redirects.
	URL string

	// ContentType is the declared media type, as sent by the server.
	ContentType string

	Body io.ReadCloser
}

// Fetcher retrieves content from URLs.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response with its
	// declared content type. Redirects are followed transparently.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Kind classifies fetched content by its declared content type.
type Kind int

// Content kinds the crawl distinguishes.
const (
	KindOther Kind = iota
	KindHTML
	KindImage
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindImage:
		return "image"
	default:
		return "other"
	}
}

// Classify maps a declared content type to a Kind.
// Pages are text/html or application/xhtml+xml; anything starting with
// "image" is an image.
func Classify(contentType string) Kind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "text/html"), strings.HasPrefix(ct, "application/xhtml+xml"):
		return KindHTML
	case strings.HasPrefix(ct, "image"):
		return KindImage
	default:
		return KindOther
	}
}
