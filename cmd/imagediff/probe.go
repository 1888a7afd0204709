package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/imagediff/lib/config"
	"github.com/pthm/imagediff/lib/probe"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	sizeStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	faint      = lipgloss.NewStyle().Faint(true)
)

type probeResult struct {
	url  string
	info probe.Info
	err  error
}

func runProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	cfgPath := fs.String("config", config.FileName, "configuration file")
	timeout := fs.Duration("timeout", 0, "override probe.timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("probe: no images given")
	}

	cfg, err := config.Resolve(*cfgPath)
	if err != nil {
		return err
	}
	d := cfg.ProbeTimeout
	if *timeout > 0 {
		d = *timeout
	}
	// The operator names the images, so any host may be fetched.
	src := newSource(cfg, d, "*")

	results := probeAll(context.Background(), src, d, fs.Args())
	failed := 0
	width := 0
	for _, r := range results {
		width = max(width, lipgloss.Width(r.url))
	}
	for _, r := range results {
		name := nameStyle.Width(width + 2).Render(r.url)
		if r.err != nil {
			failed++
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, name, errorStyle.Render(r.err.Error())))
			continue
		}
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, name,
			sizeStyle.Render(fmt.Sprintf("%dx%d", r.info.Width, r.info.Height)),
			faint.Render(" "+r.info.Format),
		))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(results))
	}
	return nil
}

// probeAll probes urls concurrently, each bounded by timeout, and returns
// the results in input order.
func probeAll(ctx context.Context, src *probe.Source, timeout time.Duration, urls []string) []probeResult {
	results := make([]probeResult, len(urls))
	var g errgroup.Group
	g.SetLimit(8)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			pctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			info, err := src.Dimensions(pctx, u)
			if probe.IsTimeout(err) {
				err = fmt.Errorf("timed out after %s", timeout)
			}
			results[i] = probeResult{url: u, info: info, err: err}
			return nil
		})
	}
	g.Wait()
	return results
}
