package webcollage

// LinkExtractor finds crawl candidates in HTML.
type LinkExtractor interface {
	// ExtractLinks returns the absolute http(s) URLs referenced by <a href>,
	// <img src> and <frame src> in html, resolved against baseURL.
	// Candidates that are malformed, use another scheme or carry a fragment
	// are left out. lines is the number of input lines scanned.
	ExtractLinks(html string, baseURL string) (links []string, lines int)
}
