// Package goquery provides a webcollage.LinkExtractor backed by goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcollage"
)

// Ensure LinkExtractor implements webcollage.LinkExtractor at compile time.
var _ webcollage.LinkExtractor = (*LinkExtractor)(nil)

// candidateSelector matches every element that can reference a crawl target.
// The HTML parser lowercases tag and attribute names, so matching is
// case-insensitive.
const candidateSelector = "a[href], img[src], frame[src]"

// LinkExtractor finds page and image links in HTML.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the absolute URLs referenced by <a href>, <img src>
// and <frame src>, in document order and without duplicates.
//
// Candidates are dropped when they contain a fragment ("#"), name a scheme
// other than http or https, or fail to resolve against baseURL. None of
// these is reported; the candidate is simply absent from the result.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, int) {
	lines := countLines(html)

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, lines
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, lines
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		attr := "src"
		if goquery.NodeName(sel) == "a" {
			attr = "href"
		}
		ref, _ := sel.Attr(attr)

		resolved := resolveURL(base, ref)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, lines
}

// resolveURL resolves a candidate reference against a base URL.
// Returns "" if the candidate must be skipped.
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	// Fragment navigation is never a distinct crawl target.
	if strings.Contains(ref, "#") {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.Scheme != "" && !isHTTP(u.Scheme) {
		return ""
	}

	resolved := base.ResolveReference(u)
	if !isHTTP(resolved.Scheme) || resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

func isHTTP(scheme string) bool {
	scheme = strings.ToLower(scheme)
	return scheme == "http" || scheme == "https"
}

// countLines counts lines the way a line reader would: a trailing line
// without a newline still counts.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
