package mock

import "github.com/fwojciec/webcollage"

var _ webcollage.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of webcollage.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, int)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, int) {
	return e.ExtractLinksFn(html, baseURL)
}
