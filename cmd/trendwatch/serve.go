package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nao1215/trendwatch/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the daily scheduler",
		Long: `Serve starts the trendwatch HTTP server and the daily trigger loop.

The server exposes:
  GET  /api/health        - process liveness
  GET  /api/trending      - current trending projects (cached)
  GET  /api/cache-status  - cache slot state
  GET  /api/github-health - source reachability probe
  GET  /api/reports       - stored report metadata, newest first
  GET  /api/report/{name} - one stored report as Markdown
  POST /api/generate      - trigger a report generation run
  POST /api/cache/clear   - reset the trending cache

The daily scheduler generates a report at the configured report time and
fires a reminder at the configured reminder time, both evaluated in the
configured time zone.

Examples:
  # Serve on the default port
  trendwatch serve

  # Serve on port 8080 with a custom report directory
  trendwatch serve --port 8080 --reports-dir ./reports

  # Use an explicit configuration file
  trendwatch serve -c ./trendwatch.yaml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().IntP("port", "p", 0,
		"HTTP listen port (default: PORT environment variable, then 3000)")
	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	// Optional .env file, matching the original deployment convention.
	// A missing file is not an error.
	_ = godotenv.Load()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Port precedence: flag > PORT env > config file > default.
	if cmd.Flags().Changed("port") {
		if cfg.Port, err = cmd.Flags().GetInt("port"); err != nil {
			return err
		}
	} else if envPort := os.Getenv("PORT"); envPort != "" {
		cfg.Port = portFromEnv(envPort, cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	// Graceful shutdown on interrupt signals.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping...")
		cancel()
	}()

	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}

	go func() {
		// Start returns ctx.Err() on shutdown; nothing to escalate.
		_ = comps.sched.Start(ctx)
	}()

	srv := server.New(cfg.Port, comps.guard, comps.client, comps.store, comps.sched, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}
