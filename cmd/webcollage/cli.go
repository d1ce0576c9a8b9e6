package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/webcollage"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" required:"" help:"Start page; its links seed the crawl (http:// is assumed)"`

	Workers   int           `short:"w" default:"${workers}" env:"WEBCOLLAGE_WORKERS" help:"Number of fetch workers"`
	Capacity  int           `default:"${capacity}" env:"WEBCOLLAGE_CAPACITY" help:"Images buffered between workers and display"`
	Delay     time.Duration `default:"${delay}" env:"WEBCOLLAGE_DELAY" help:"Minimum interval between displayed images"`
	MaxScale  float64       `name:"max-scale" default:"${max_scale}" env:"WEBCOLLAGE_MAX_SCALE" help:"Largest fraction of the canvas one image may cover"`
	Timeout   time.Duration `short:"t" default:"${timeout}" env:"WEBCOLLAGE_TIMEOUT" help:"Fetch timeout per URL"`
	MaxBody   int64         `name:"max-body" default:"${max_body}" env:"WEBCOLLAGE_MAX_BODY" help:"Largest response body read, in bytes"`
	UserAgent string        `name:"user-agent" default:"${user_agent}" env:"WEBCOLLAGE_USER_AGENT" help:"User-Agent header sent with every request"`
	Duration  time.Duration `short:"d" env:"WEBCOLLAGE_DURATION" help:"Stop after this long (0 runs until interrupted)"`

	Collage string `short:"o" default:"webcollage.png" env:"WEBCOLLAGE_COLLAGE" help:"Collage PNG rewritten after every image (empty disables)"`
	Width   int    `default:"1200" env:"WEBCOLLAGE_WIDTH" help:"Collage width in pixels"`
	Height  int    `default:"900" env:"WEBCOLLAGE_HEIGHT" help:"Collage height in pixels"`
	OutDir  string `name:"out-dir" env:"WEBCOLLAGE_OUT_DIR" help:"Also save every image as a PNG under this directory"`
	DB      string `name:"db" env:"WEBCOLLAGE_DB" help:"Also record every image in this SQLite database"`

	Dedup         string  `enum:"exact,bloom" default:"exact" env:"WEBCOLLAGE_DEDUP" help:"Visited-URL set: exact or bloom (fixed memory, may skip URLs)"`
	BloomCapacity uint    `name:"bloom-capacity" default:"1000000" env:"WEBCOLLAGE_BLOOM_CAPACITY" help:"Expected number of URLs for the bloom visited set"`
	BloomFPRate   float64 `name:"bloom-fp-rate" default:"0.001" env:"WEBCOLLAGE_BLOOM_FP_RATE" help:"False positive rate of the bloom visited set"`

	MetricsAddr string `name:"metrics-addr" env:"WEBCOLLAGE_METRICS_ADDR" help:"Serve Prometheus metrics on this address, e.g. :9090"`
	Verbose     bool   `short:"v" env:"WEBCOLLAGE_VERBOSE" help:"Log every fetch, admission and display"`
}

// Config returns the crawl configuration selected by the flags.
func (c *CLI) Config() webcollage.Config {
	return webcollage.Config{
		Workers:      c.Workers,
		Capacity:     c.Capacity,
		Delay:        c.Delay,
		MaxScale:     c.MaxScale,
		FetchTimeout: c.Timeout,
		MaxBodyBytes: c.MaxBody,
	}
}

// Run discovers the seeds and crawls until the context ends.
func (c *CLI) Run(deps *Dependencies) error {
	links, lines, err := deps.Engine.Seeds(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcollage.ErrorMessage(err))
		return err
	}
	deps.Logger.Info("seeded", "url", c.URL, "lines", lines, "links", len(links))
	fmt.Fprintf(deps.Stdout, "Seeded %d URLs from %s\n", len(links), c.URL)

	ctx := deps.Ctx
	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}

	if err := deps.Engine.Run(ctx, links); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Delivered %d images (%d pages scanned, %d failures, %d URLs admitted)\n",
		deps.Tally.delivered.Load(), deps.Tally.scanned.Load(), deps.Tally.failed.Load(), deps.Frontier.Visited())

	if deps.Gallery != nil {
		n, err := deps.Gallery.Count(context.WithoutCancel(deps.Ctx))
		if err != nil {
			return fmt.Errorf("failed to count gallery images: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Gallery %s holds %d images\n", c.DB, n)
	}
	return nil
}
