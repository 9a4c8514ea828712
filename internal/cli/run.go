package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/salesingest/internal/logging"
	"github.com/retailops/salesingest/pkg/salesingest"
)

var runCmd = &cobra.Command{
	Use:   "run <run_date>",
	Short: "Run the full ingestion pipeline for one date",
	Long: `Run executes the full pipeline in one process: download the sales CSV from
object storage, filter it to the run date, and upsert the filtered rows into
the customers, products, sales, and sale_items tables.

The run date selects which rows of the batch are ingested; time-of-day in
the source data is ignored. Re-running the same date with the same source
data leaves the database unchanged.

Arguments:
  run_date    Target date, YYYYMMDD (YYYY-MM-DD also accepted)

Examples:
  # Ingest June 16th 2025
  salesingest run 20250616

  # Same, with the scheduler's ISO run date
  salesingest run 2025-06-16`,
	Args: RequireRunDate,
	RunE: runRun,
}

var runFlags struct {
	timeout time.Duration
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runFlags.timeout, "timeout", salesingest.DefaultRunTimeout,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues; not a per-query timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := runContext(runFlags.timeout)
	defer cancel()

	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, target)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	return printResult(result)
}

// printResult emits the machine-readable run result on stdout; all logging
// goes to stderr so schedulers can consume this cleanly.
func printResult(result *salesingest.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
