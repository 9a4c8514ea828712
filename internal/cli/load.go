package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/retailops/salesingest/internal/handoff"
	"github.com/retailops/salesingest/internal/logging"
	"github.com/retailops/salesingest/pkg/salesingest"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Scheduled task 2: load the hand-off artifact into PostgreSQL",
	Long: `Load reads the row set written by 'salesingest extract' and upserts it into
the customers, products, sales, and sale_items tables in one transaction.

A missing or empty artifact means the extract task found no data for its run
date; load then reports the no_data outcome with a zero exit code and writes
nothing.

Examples:
  salesingest load --handoff /tmp/rowset-20250616.json`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var loadFlags struct {
	handoffPath string
	timeout     time.Duration
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.handoffPath, "handoff", "rowset.json",
		"Path of the hand-off artifact written by the extract task")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", salesingest.DefaultRunTimeout,
		"Catastrophic failure protection timeout")
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	set, err := handoff.Read(loadFlags.handoffPath)
	if err != nil {
		if errors.Is(err, salesingest.ErrNoData) {
			logger.Info("No data to load")
			return printResult(&salesingest.RunResult{Status: salesingest.StatusNoData})
		}
		return err
	}
	logger.Info("Recovered %d rows from hand-off artifact %s", set.Len(), loadFlags.handoffPath)

	ctx, cancel := runContext(loadFlags.timeout)
	defer cancel()

	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}

	summary, err := runner.Load(ctx, set)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	return printResult(&salesingest.RunResult{
		RunID:      uuid.NewString(),
		TargetDate: set.TargetDate,
		Status:     salesingest.StatusSuccess,
		Rows:       set.Len(),
		Summary:    summary,
	})
}
