package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/retailops/salesingest/internal/config"
	"github.com/retailops/salesingest/internal/db"
	"github.com/retailops/salesingest/internal/extract"
	"github.com/retailops/salesingest/internal/pipeline"
	"github.com/retailops/salesingest/internal/storage"
	"github.com/retailops/salesingest/pkg/salesingest"
)

// ConfigFileNameHint is surfaced in help text.
const ConfigFileNameHint = config.ConfigFileName

// loadConfig loads .env into the environment (best effort, matching the
// compose workflow), then assembles the layered configuration.
func loadConfig(cmd *cobra.Command) (*salesingest.Config, error) {
	_ = godotenv.Load()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path = ""
	}
	return config.Load(path)
}

// buildRunner constructs the pipeline runner with real collaborators.
func buildRunner(ctx context.Context, cfg *salesingest.Config, logger salesingest.Logger) (*pipeline.Runner, error) {
	store, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor(logger)
	connector := db.NewConnector(cfg.Database)
	connect := func(ctx context.Context) (salesingest.DBConn, error) {
		return connector.Connect(ctx)
	}

	return pipeline.NewRunner(cfg, store, extractor, connect, logger), nil
}

// runContext returns a context bounded by the timeout and cancelled on
// SIGINT/SIGTERM so an interrupted run releases its connections.
func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling run...")
		cancel()
	}()

	return ctx, cancel
}
