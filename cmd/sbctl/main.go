package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danmuck/sbcontrol/internal/config"
	"github.com/danmuck/sbcontrol/internal/observability"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := observability.InitLogger("sbctl")
	if err := newApp(logger).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sbctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(logger zerolog.Logger) *cli.App {
	return &cli.App{
		Name:  "sbctl",
		Usage: "inspect and exercise the scoreboard packet layer",
		Commands: []*cli.Command{
			newVersionsCommand(),
			newDemoCommand(logger),
			newConfigCommand(),
		},
	}
}

func newVersionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "list supported versions and the features each enables",
		Action: func(c *cli.Context) error {
			return printVersions(c.App.Writer)
		},
	}
}

func printVersions(w io.Writer) error {
	for _, v := range protocol.Versions() {
		var features []string
		for _, f := range protocol.Features() {
			if v.Supports(f) {
				features = append(features, f.String())
			}
		}
		if _, err := fmt.Fprintf(w, "%-7s %s\n", v, strings.Join(features, ",")); err != nil {
			return err
		}
	}
	return nil
}

func newDemoCommand(logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "run a scripted scoreboard session and print the packets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "sbctl config file"},
			&cli.StringFlag{Name: "version", Usage: "protocol version, overrides the config"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve metrics here after the session"},
		},
		Action: func(c *cli.Context) error {
			opts, err := loadOptions(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("version") {
				opts.Host.Version = c.String("version")
			}
			if c.IsSet("metrics-addr") {
				opts.MetricsAddr = c.String("metrics-addr")
			}
			if err := opts.validate(); err != nil {
				return err
			}
			if opts.MetricsAddr != "" {
				observability.RegisterMetrics()
			}
			if err := runDemo(opts, c.App.Writer, logger); err != nil {
				return err
			}
			if opts.MetricsAddr == "" {
				return nil
			}
			return serveMetrics(c.Context, opts.MetricsAddr, logger)
		},
	}
}

// serveMetrics blocks until interrupted.
func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.MetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info().Str("addr", addr).Msg("serving metrics")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "host config templates",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a config template",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Value: "sbcontrol.toml", Usage: "output path"},
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
				},
				Action: func(c *cli.Context) error {
					target := c.String("output")
					if err := config.WriteTemplate(target, c.Bool("force")); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "wrote config template to %s\n", target)
					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "validate a host config",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("config validate: path is required")
					}
					cfg, err := config.Load(path)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "validated %s (version %s)\n", path, cfg.Version)
					return nil
				},
			},
		},
	}
}
