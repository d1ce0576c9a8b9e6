package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webcollage"
	"github.com/fwojciec/webcollage/bloom"
	"github.com/fwojciec/webcollage/crawl"
	"github.com/fwojciec/webcollage/fs"
	"github.com/fwojciec/webcollage/goquery"
	wchttp "github.com/fwojciec/webcollage/http"
	"github.com/fwojciec/webcollage/prometheus"
	wcslog "github.com/fwojciec/webcollage/slog"
	"github.com/fwojciec/webcollage/sqlite"
	"github.com/fwojciec/webcollage/ximage"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Engine   *crawl.Engine
	Frontier *crawl.Frontier
	Tally    *tally

	DB      *sqlite.DB
	Gallery *sqlite.Gallery
	Metrics *http.Server
}

// Wire builds the engine and its collaborators from the parsed flags.
func (d *Dependencies) Wire(cli *CLI, cfg webcollage.Config) error {
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	d.Logger = slog.New(slog.NewTextHandler(d.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher := wcslog.NewLoggingFetcher(
		wchttp.NewFetcher(wchttp.WithTimeout(cfg.FetchTimeout), wchttp.WithUserAgent(cli.UserAgent)),
		d.Logger,
	)

	var visited webcollage.VisitedSet
	if cli.Dedup == "bloom" {
		visited = bloom.NewVisitedSet(cli.BloomCapacity, cli.BloomFPRate)
	}

	sink, err := d.sinks(cli, cfg)
	if err != nil {
		return err
	}

	d.Tally = &tally{}
	recorders := crawl.MultiRecorder{wcslog.NewRecorder(d.Logger), d.Tally}
	if cli.MetricsAddr != "" {
		rec, err := d.serveMetrics(cli.MetricsAddr)
		if err != nil {
			return err
		}
		recorders = append(recorders, rec)
	}

	d.Frontier = crawl.NewFrontier(visited)
	d.Engine = &crawl.Engine{
		Config:   cfg,
		Frontier: d.Frontier,
		Fetcher:  fetcher,
		Links:    goquery.NewLinkExtractor(),
		Decoder:  ximage.NewDecoder(),
		Sink:     wcslog.NewLoggingSink(sink, d.Logger),
		Recorder: recorders,
	}
	return nil
}

func (d *Dependencies) sinks(cli *CLI, cfg webcollage.Config) (webcollage.Sink, error) {
	var sinks crawl.MultiSink

	if cli.Collage != "" {
		if cli.Width <= 0 || cli.Height <= 0 {
			return nil, webcollage.Errorf(webcollage.EINVALID, "collage size must be positive, got %dx%d", cli.Width, cli.Height)
		}
		collage := ximage.NewCollage(cli.Width, cli.Height, ximage.WithMaxScale(cfg.MaxScale))
		file := fs.NewCollageFile(collage, cli.Collage)
		if err := file.Save(); err != nil {
			return nil, fmt.Errorf("failed to write collage %q: %w", cli.Collage, err)
		}
		sinks = append(sinks, file)
	}

	if cli.OutDir != "" {
		sinks = append(sinks, fs.NewWriter(cli.OutDir))
	}

	if cli.DB != "" {
		d.DB = sqlite.NewDB(cli.DB)
		if err := d.DB.Open(); err != nil {
			fmt.Fprintf(d.Stderr, "Hint: Set WEBCOLLAGE_DB to use a different database path\n")
			return nil, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		d.Gallery = sqlite.NewGallery(d.DB)
		sinks = append(sinks, d.Gallery)
	}

	if len(sinks) == 0 {
		return nil, webcollage.Errorf(webcollage.EINVALID, "no output: set --collage, --out-dir or --db")
	}
	return sinks, nil
}

func (d *Dependencies) serveMetrics(addr string) (webcollage.Recorder, error) {
	reg := prom.NewRegistry()
	rec, err := prometheus.NewRecorder(reg)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %q: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.Handler(reg))
	d.Metrics = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := d.Metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.Logger.Error("metrics server", "err", err)
		}
	}()
	d.Logger.Info("serving metrics", "addr", ln.Addr().String())
	return rec, nil
}

// Close releases the database and stops the metrics server.
func (d *Dependencies) Close() error {
	var errs []error
	if d.Metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, d.Metrics.Shutdown(ctx))
	}
	if d.DB != nil {
		errs = append(errs, d.DB.Close())
	}
	return errors.Join(errs...)
}

// tally counts the events summarised when the crawl stops.
type tally struct {
	scanned   atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
}

func (t *tally) Record(e webcollage.Event) {
	switch e.Type {
	case webcollage.EventPageScanned:
		t.scanned.Add(1)
	case webcollage.EventImageDelivered:
		if e.Err == nil {
			t.delivered.Add(1)
		}
	case webcollage.EventFailed:
		t.failed.Add(1)
	}
}
