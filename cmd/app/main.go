package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/feather-contrib/internal"
	"github.com/starford/feather-contrib/internal/apperr"
	pkgconfig "github.com/starford/feather-contrib/pkg/config"
)

var version = "dev"

type runFunc func(ctx context.Context, opts ...internal.Option) error

// loadConfig reads the optional config file, then applies any flag the
// user set explicitly on the command line.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("source") {
		cfg.Docs.SourceDir = cmd.String("source")
	}
	if cmd.IsSet("output") {
		cfg.Docs.OutputDir = cmd.String("output")
	}
	if cmd.IsSet("serve") {
		cfg.Preview.Enabled = cmd.Bool("serve")
	}
	if cmd.IsSet("http-port") {
		cfg.Preview.HTTP.Port = int(cmd.Int("http-port"))
	}
	if cmd.IsSet("host") {
		cfg.Daemon.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Daemon.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("interval") {
		interval := cmd.Int("interval")
		if interval < 1 {
			return nil, fmt.Errorf("invalid flags: interval must be positive, got %d", interval)
		}
		cfg.Daemon.Interval = uint64(interval)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func action(run runFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return run(ctx, internal.WithConfig(cfg))
	}
}

func docsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "Directory of upstream guides",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Directory the generated docs are written to (its .md files are replaced)",
		},
	}
}

func daemonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "Daemon RPC host",
			Value: "127.0.0.1",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"P"},
			Usage:   "Daemon port",
			Value:   18081,
		},
		&cli.IntFlag{
			Name:  "interval",
			Usage: "Blocks between sampled heights",
			Value: 1500,
		},
	}
}

func main() {
	internal.Version = version

	cmd := &cli.Command{
		Name:    "feather-contrib",
		Usage:   "Maintainer tooling: embedded docs generation and restore-height sampling",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "docs",
				Usage:  "Convert the feather-docs guides into the wallet's embedded docs",
				Flags:  docsFlags(),
				Action: action(internal.RunDocs),
				Commands: []*cli.Command{
					{
						Name:  "watch",
						Usage: "Regenerate on every guide change, optionally serving a preview",
						Flags: append(docsFlags(),
							&cli.BoolFlag{
								Name:  "serve",
								Usage: "Serve the generated docs over HTTP",
							},
							&cli.IntFlag{
								Name:  "http-port",
								Usage: "Preview server port",
								Value: 8080,
							},
						),
						Action: action(internal.RunWatch),
					},
				},
			},
			{
				Name:   "heights",
				Usage:  "Generate the restore height list from a running daemon",
				Flags:  daemonFlags(),
				Action: action(internal.RunHeights),
			},
			{
				Name:   "mcp",
				Usage:  "Serve the docs and heights tools over MCP stdio",
				Flags:  append(docsFlags(), daemonFlags()...),
				Action: action(internal.RunMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, apperr.ErrMissingInput) {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
