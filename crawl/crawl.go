// Package crawl provides the concurrent crawl engine: a deduplicating URL
// frontier, a fixed pool of fetch workers, and a bounded, throttled
// delivery of decoded images to a display sink.
package crawl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webcollage"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Engine crawls from a set of seed URLs and streams the images it finds
// to Sink. The zero Config selects webcollage.DefaultConfig().
type Engine struct {
	Config   webcollage.Config
	Frontier webcollage.URLFrontier
	Fetcher  webcollage.Fetcher
	Links    webcollage.LinkExtractor
	Decoder  webcollage.Decoder
	Sink     webcollage.Sink
	Recorder webcollage.Recorder
}

// Run admits the seeds, starts the workers and the delivery loop, and
// blocks until ctx is canceled. The crawl has no natural end: an empty
// frontier only parks the workers until new URLs arrive.
// Returns nil once every goroutine has stopped after cancellation.
func (e *Engine) Run(ctx context.Context, seeds []string) error {
	r, err := e.newRun()
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return webcollage.Errorf(webcollage.EINVALID, "at least one seed URL required")
	}

	for _, seed := range seeds {
		if r.frontier.TryAdmit(seed) {
			r.record(webcollage.Event{Type: webcollage.EventAdmitted, URL: seed})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Workers; i++ {
		g.Go(func() error {
			r.work(gctx)
			return nil
		})
	}
	g.Go(func() error {
		r.deliver(gctx)
		return nil
	})
	return g.Wait()
}

// run holds the state shared by the goroutines of one crawl.
type run struct {
	cfg      webcollage.Config
	frontier webcollage.URLFrontier
	fetcher  webcollage.Fetcher
	links    webcollage.LinkExtractor
	decoder  webcollage.Decoder
	sink     webcollage.Sink
	recorder webcollage.Recorder
	images   *Delivery
}

func (e *Engine) newRun() (*run, error) {
	cfg := e.Config
	if cfg == (webcollage.Config{}) {
		cfg = webcollage.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case e.Fetcher == nil:
		return nil, webcollage.Errorf(webcollage.EINVALID, "fetcher required")
	case e.Links == nil:
		return nil, webcollage.Errorf(webcollage.EINVALID, "link extractor required")
	case e.Decoder == nil:
		return nil, webcollage.Errorf(webcollage.EINVALID, "image decoder required")
	case e.Sink == nil:
		return nil, webcollage.Errorf(webcollage.EINVALID, "sink required")
	}

	frontier := e.Frontier
	if frontier == nil {
		frontier = NewFrontier(nil)
	}

	return &run{
		cfg:      cfg,
		frontier: frontier,
		fetcher:  e.Fetcher,
		links:    e.Links,
		decoder:  e.Decoder,
		sink:     e.Sink,
		recorder: e.Recorder,
		images:   NewDelivery(cfg.Capacity),
	}, nil
}

// work is the loop of one fetch worker. A failed URL is recorded and
// dropped; only cancellation ends the loop.
func (r *run) work(ctx context.Context) {
	for {
		url, err := r.frontier.Take(ctx)
		if err != nil {
			return
		}
		if err := r.process(ctx, url); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.record(webcollage.Event{Type: webcollage.EventFailed, URL: url, Err: err})
		}
	}
}

// deliver is the single consumer of the delivery channel. Consecutive
// images reach the sink at least cfg.Delay apart.
func (r *run) deliver(ctx context.Context) {
	limiter := rate.NewLimiter(rate.Every(r.cfg.Delay), 1)
	for {
		img, err := r.images.Take(ctx)
		if err != nil {
			return
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		err = r.sink.Show(ctx, img)
		r.record(webcollage.Event{
			Type:     webcollage.EventImageDelivered,
			URL:      img.URL,
			Pending:  r.frontier.Len(),
			Buffered: r.images.Len(),
			Err:      err,
		})
	}
}

// fetchResult is the classified outcome of fetching one URL. Exactly one
// of html, image or err is meaningful, selected by kind.
type fetchResult struct {
	kind        webcollage.Kind
	contentType string
	base        string
	html        string
	image       *webcollage.Image
	err         error
}

// process fetches one URL and acts on its classification.
func (r *run) process(ctx context.Context, url string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = webcollage.Errorf(webcollage.EINTERNAL, "panic processing %s: %v", url, p)
		}
	}()

	res := r.fetch(ctx, url)
	if res.err != nil {
		return res.err
	}

	switch res.kind {
	case webcollage.KindHTML:
		links, lines := r.links.ExtractLinks(res.html, res.base)
		r.record(webcollage.Event{
			Type:  webcollage.EventPageScanned,
			URL:   url,
			Links: len(links),
			Lines: lines,
		})
		for _, link := range links {
			if r.frontier.TryAdmit(link) {
				r.record(webcollage.Event{Type: webcollage.EventAdmitted, URL: link})
			}
		}
		return nil

	case webcollage.KindImage:
		// Blocks while the delivery channel is full.
		if err := r.images.Put(ctx, res.image); err != nil {
			return err
		}
		r.record(webcollage.Event{Type: webcollage.EventImageQueued, URL: url})
		return nil

	default:
		return webcollage.Errorf(webcollage.EUNSUPPORTED, "%s: content type %q", url, res.contentType)
	}
}

// fetch retrieves a URL and classifies its content. The fetch, including
// reading the body, is bounded by cfg.FetchTimeout.
func (r *run) fetch(ctx context.Context, url string) fetchResult {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	resp, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return fetchResult{err: withCode(webcollage.EFETCH, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	base := resp.URL
	if base == "" {
		base = url
	}
	body := io.LimitReader(resp.Body, r.cfg.MaxBodyBytes)

	kind := webcollage.Classify(resp.ContentType)
	switch kind {
	case webcollage.KindHTML:
		html, err := readHTML(body, resp.ContentType)
		if err != nil {
			return fetchResult{err: withCode(webcollage.EFETCH, err, "read %s", url)}
		}
		return fetchResult{kind: kind, contentType: resp.ContentType, base: base, html: html}

	case webcollage.KindImage:
		data, err := io.ReadAll(body)
		if err != nil {
			return fetchResult{err: withCode(webcollage.EFETCH, err, "read %s", url)}
		}
		bitmap, format, err := r.decoder.Decode(bytes.NewReader(data))
		if err != nil {
			return fetchResult{err: withCode(webcollage.EDECODE, err, "decode %s", url)}
		}
		return fetchResult{
			kind:        kind,
			contentType: resp.ContentType,
			base:        base,
			image: &webcollage.Image{
				URL:    url,
				Format: format,
				Bitmap: bitmap,
				Hash:   hashBytes(data),
			},
		}

	default:
		return fetchResult{kind: kind, contentType: resp.ContentType, base: base}
	}
}

func (r *run) record(event webcollage.Event) {
	if r.recorder != nil {
		r.recorder.Record(event)
	}
}

// readHTML reads a page body and converts it to UTF-8 using the charset
// declared in the content type or sniffed from the document.
func readHTML(body io.Reader, contentType string) (string, error) {
	decoded, err := charset.NewReader(body, contentType)
	if errors.Is(err, io.EOF) {
		// Empty body: nothing to sniff.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// withCode keeps err's code if it already carries one and otherwise
// wraps it in a new error with the given code.
func withCode(code string, err error, format string, args ...any) error {
	if webcollage.ErrorCode(err) != webcollage.EINTERNAL {
		return err
	}
	return webcollage.Errorf(code, "%s: %v", fmt.Sprintf(format, args...), err)
}

// hashBytes computes an xxhash of data as a hex string.
func hashBytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
