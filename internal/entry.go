// Package internal wires configuration, logging and the tool packages into
// the commands exposed by cmd/app.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/feather-contrib/internal/daemon"
	"github.com/starford/feather-contrib/internal/docs"
	"github.com/starford/feather-contrib/internal/heights"
	"github.com/starford/feather-contrib/internal/mcpserver"
	"github.com/starford/feather-contrib/internal/preview"
	"github.com/starford/feather-contrib/internal/sse"
	"github.com/starford/feather-contrib/internal/watch"
)

// Version is reported by the MCP server.
var Version = "dev"

func newApplication(opts []Option) (*application, *slog.Logger, error) {
	app := &application{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	// Structured JSON logs go to stderr; stdout carries tool output.
	logger := slog.New(slog.NewJSONHandler(app.stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return app, logger, nil
}

// RunDocs performs one conversion and prints each written file name.
func RunDocs(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger.Debug("Converting docs",
		slog.String("source_dir", cfg.Docs.SourceDir),
		slog.String("output_dir", cfg.Docs.OutputDir))

	res, err := docs.Convert(ctx, cfg.Docs.SourceDir, cfg.Docs.OutputDir, docs.WithOutput(app.stdout))
	if err != nil {
		return err
	}

	logger.Info("Docs generated",
		slog.Int("written", len(res.Written)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("removed", len(res.Removed)))
	return nil
}

// RunWatch converts once, then regenerates on every guide change until
// interrupted. With the preview enabled it also serves the output over HTTP.
func RunWatch(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker := sse.NewBroker()
	defer broker.Close()

	regenerate := func(ctx context.Context) error {
		res, err := docs.Convert(ctx, cfg.Docs.SourceDir, cfg.Docs.OutputDir, docs.WithOutput(app.stdout))
		if err != nil {
			broker.PublishFailed(err)
			return err
		}
		broker.PublishGenerated(res.Written)
		logger.Info("Docs generated",
			slog.Int("written", len(res.Written)),
			slog.Int("skipped", len(res.Skipped)))
		return nil
	}

	if err := regenerate(ctx); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watch.Watch(gCtx, cfg.Docs.SourceDir, watch.DefaultDebounce, logger, regenerate)
	})

	if cfg.Preview.Enabled {
		catalog, err := docs.OpenCatalog(cfg.Docs.OutputDir)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}

		httpServer := &http.Server{
			Addr:              cfg.Preview.HTTP.Address(),
			Handler:           preview.NewRouter(preview.NewHandler(catalog), broker),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			logger.Info("Starting preview server", slog.String("address", cfg.Preview.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down preview server...")

			// Close SSE streams first so Shutdown does not wait on them.
			broker.Close()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Watch error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watch stopped")
	return nil
}

// RunHeights samples the daemon and prints the restore-height table.
func RunHeights(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	client := daemon.NewClient(cfg.Daemon.Host, cfg.Daemon.Port)
	logger.Debug("Sampling restore heights",
		slog.String("endpoint", client.Endpoint()),
		slog.Uint64("interval", cfg.Daemon.Interval))

	samples, err := heights.Collect(ctx, client, cfg.Daemon.Interval)
	if err != nil {
		return err
	}
	return heights.Write(app.stdout, samples)
}

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	srv := mcpserver.New(mcpserver.Settings{
		SourceDir:  cfg.Docs.SourceDir,
		OutputDir:  cfg.Docs.OutputDir,
		DaemonHost: cfg.Daemon.Host,
		DaemonPort: cfg.Daemon.Port,
		Interval:   cfg.Daemon.Interval,
	}, Version)

	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
