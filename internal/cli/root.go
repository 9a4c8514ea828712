// Package cli wires the salesingest commands. Commands are thin adapters:
// argument parsing and dependency construction here, pipeline semantics in
// internal/pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salesingest",
	Short: "Daily e-commerce sales ingestion (MinIO → PostgreSQL)",
	Long: `salesingest materializes a daily batch of e-commerce sale line items from
object storage into four normalized PostgreSQL tables (customers, products,
sales, sale_items), recomputing each sale's total from its line items.

Every write is an idempotent upsert: re-running a date leaves the store
unchanged, which is what makes the scheduler's blind retry safe.

Commands:
  run       One-shot pipeline: extract and load in one process
  extract   Scheduled task 1: filter the batch and write the hand-off artifact
  load      Scheduled task 2: read the hand-off artifact and load it

Exit Codes:
  0  - Success (including the no-data outcome)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - Object storage unreachable or bucket/key missing
  13 - Source content is not valid tabular data
  14 - Load transaction failed to commit`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./"+ConfigFileNameHint+")")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
