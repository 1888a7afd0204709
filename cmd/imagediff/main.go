package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/config"
	"github.com/pthm/imagediff/lib/encoding"
	"github.com/pthm/imagediff/lib/probe"
	"github.com/pthm/imagediff/server"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		if err := runServe(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "probe":
		if err := runProbe(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("imagediff version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`imagediff - compare two images in the browser

Usage:
  imagediff <command> [arguments]

Commands:
  serve                 Serve the comparison page
  probe <image>...      Print the dimensions of images
  version               Print version
  help                  Show this help

Options for serve:
  --config <file>       Configuration file (default imagediff.yaml)

Options for probe:
  --config <file>       Configuration file (default imagediff.yaml)
  --timeout <duration>  Override probe.timeout

Examples:
  imagediff serve
  imagediff serve --config deploy/imagediff.yaml
  imagediff probe static/before.png https://example.com/after.png

The comparison page accepts before, after and mode query parameters:
  http://localhost:8080/?before=/static/a.png&after=/static/b.png&mode=swipe`)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfgPath := fs.String("config", config.FileName, "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Resolve(*cfgPath)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if cfg.EphemeralKey {
		e.Logger.Warn("no server.key configured, using a random key; tokens will not survive a restart")
	}

	enc, err := encoding.NewEncoder(cfg.Key)
	if err != nil {
		return err
	}
	opts := []server.Option{server.WithPath(cfg.Path), server.WithLogger(e.Logger)}
	if cfg.Sensitive {
		opts = append(opts, server.WithSensitive())
	}
	if !cfg.ProbeDisabled {
		opts = append(opts, server.WithSource(newSource(cfg, cfg.ProbeTimeout, cfg.ProbeAllowHosts...)))
	}
	viewer := server.New("imagediff", enc, opts...)
	server.Mount(e, viewer)

	if cfg.Static != "" {
		e.Static("/static", cfg.Static)
	}

	e.GET("/", func(c echo.Context) error {
		before := orDefault(c.QueryParam("before"), cfg.Before)
		after := orDefault(c.QueryParam("after"), cfg.After)
		mode := cfg.Mode
		if m := c.QueryParam("mode"); m != "" {
			parsed, err := imagediff.ParseMode(m)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			mode = parsed
		}

		props, err := viewer.Initial(c.Request().Context(), before, after, mode)
		if err != nil {
			return err
		}
		view, err := viewer.Render(props)
		if err != nil {
			return err
		}
		return server.RenderEcho(c, server.Page("imagediff", view))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newSource(cfg *config.Resolved, timeout time.Duration, hosts ...string) *probe.Source {
	return probe.New(
		probe.WithFS(os.DirFS(cfg.ProbeRoot)),
		probe.WithTimeout(timeout),
		probe.WithMaxBytes(cfg.ProbeMaxBytes),
		probe.WithAllowHosts(hosts...),
	)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
