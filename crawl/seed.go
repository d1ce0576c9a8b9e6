package crawl

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/webcollage"
)

// StartURL turns a user-supplied start address into an absolute URL,
// assuming http when no http(s) scheme is given.
func StartURL(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	lower := strings.ToLower(addr)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil || u.Host == "" {
		return "", webcollage.Errorf(webcollage.EMALFORMED, "%q is not a legal URL", addr)
	}
	return u.String(), nil
}

// Seeds fetches the page at addr and returns the links found on it, for
// use as the seed list of Run, together with the number of lines read.
func (e *Engine) Seeds(ctx context.Context, addr string) (links []string, lines int, err error) {
	if e.Fetcher == nil || e.Links == nil {
		return nil, 0, webcollage.Errorf(webcollage.EINVALID, "fetcher and link extractor required")
	}
	cfg := e.Config
	if cfg == (webcollage.Config{}) {
		cfg = webcollage.DefaultConfig()
	}

	start, err := StartURL(addr)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	resp, err := e.Fetcher.Fetch(ctx, start)
	if err != nil {
		return nil, 0, withCode(webcollage.EFETCH, err, "fetch %s", start)
	}
	defer resp.Body.Close()

	if webcollage.Classify(resp.ContentType) != webcollage.KindHTML {
		return nil, 0, webcollage.Errorf(webcollage.EUNSUPPORTED, "%s is not an HTML page (content type %q)", start, resp.ContentType)
	}

	html, err := readHTML(io.LimitReader(resp.Body, cfg.MaxBodyBytes), resp.ContentType)
	if err != nil {
		return nil, 0, withCode(webcollage.EFETCH, err, "read %s", start)
	}

	base := resp.URL
	if base == "" {
		base = start
	}
	links, lines = e.Links.ExtractLinks(html, base)
	if len(links) == 0 {
		return nil, lines, webcollage.Errorf(webcollage.ENOTFOUND, "no links found at %s", start)
	}
	return links, lines, nil
}
