package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webcollage"
	wchttp "github.com/fwojciec/webcollage/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. It blocks until ctx is
// canceled or the --duration elapses.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webcollage"),
		kong.Description("Crawl the web from a start page and collage the images found"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		defaultVars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no start URL given. Run 'webcollage --help' to see usage")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	if err := deps.Wire(cli, cfg); err != nil {
		deps.Close()
		return err
	}
	defer deps.Close()

	return cli.Run(deps)
}

// defaultVars exposes the library defaults to flag definitions.
func defaultVars() kong.Vars {
	cfg := webcollage.DefaultConfig()
	return kong.Vars{
		"workers":    strconv.Itoa(cfg.Workers),
		"capacity":   strconv.Itoa(cfg.Capacity),
		"delay":      cfg.Delay.String(),
		"max_scale":  strconv.FormatFloat(cfg.MaxScale, 'g', -1, 64),
		"timeout":    cfg.FetchTimeout.String(),
		"max_body":   strconv.FormatInt(cfg.MaxBodyBytes, 10),
		"user_agent": wchttp.DefaultUserAgent,
	}
}
