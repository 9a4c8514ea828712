package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireRunDate validates that exactly one run_date argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireRunDate(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <run_date>

Usage: %s <run_date>

Example:
  %s 20250616`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
