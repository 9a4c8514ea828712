package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/salesingest/internal/handoff"
	"github.com/retailops/salesingest/internal/logging"
	"github.com/retailops/salesingest/pkg/salesingest"
)

var extractCmd = &cobra.Command{
	Use:   "extract <run_date>",
	Short: "Scheduled task 1: filter the daily batch and write the hand-off artifact",
	Long: `Extract downloads the sales CSV from object storage, filters it to the run
date, and writes the filtered row set to the hand-off artifact for a
subsequent 'salesingest load'. The two commands together form the scheduled
two-task pipeline (extract -> load); the artifact is the channel between
them and preserves field names, dates, and numeric precision exactly.

When no rows match the run date, no artifact is written and the command
reports the no_data outcome with a zero exit code.

Examples:
  salesingest extract 2025-06-16 --handoff /tmp/rowset-20250616.json`,
	Args: RequireRunDate,
	RunE: runExtract,
}

var extractFlags struct {
	handoffPath string
	timeout     time.Duration
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFlags.handoffPath, "handoff", "rowset.json",
		"Path of the hand-off artifact to write for the load task")
	extractCmd.Flags().DurationVar(&extractFlags.timeout, "timeout", salesingest.DefaultRunTimeout,
		"Catastrophic failure protection timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	target, err := salesingest.ParseTargetDate(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := runContext(extractFlags.timeout)
	defer cancel()

	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}

	set, err := runner.Extract(ctx, target)
	if err != nil {
		if errors.Is(err, salesingest.ErrNoData) {
			logger.Info("No data for %s; nothing to hand off", target)
			// Clear any artifact a previous run left at this path, or a
			// subsequent load would re-apply that run's batch.
			if err := handoff.Remove(extractFlags.handoffPath); err != nil {
				return err
			}
			return printResult(&salesingest.RunResult{
				TargetDate: target,
				Status:     salesingest.StatusNoData,
			})
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := handoff.Write(extractFlags.handoffPath, set); err != nil {
		return err
	}
	logger.Info("Wrote %d rows to hand-off artifact %s", set.Len(), extractFlags.handoffPath)

	return printResult(&salesingest.RunResult{
		TargetDate: target,
		Status:     salesingest.StatusSuccess,
		Rows:       set.Len(),
	})
}
