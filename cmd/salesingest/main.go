package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/retailops/salesingest/internal/cli"
	"github.com/retailops/salesingest/pkg/salesingest"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(salesingest.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(salesingest.ExitCodeForError(err))
	}
}
