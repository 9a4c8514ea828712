package salesingest

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := runner.Run(ctx, date)
//	if errors.Is(err, salesingest.ErrNoData) {
//	    // Not a failure: the batch simply has no rows for this date.
//	}
var (
	// ErrInvalidDate indicates the target date argument is malformed.
	ErrInvalidDate = errors.New("invalid target date")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceUnavailable indicates object storage is unreachable or the
	// bucket/key does not exist. Transient from the scheduler's point of
	// view: retrying a later run may succeed.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrParse indicates the retrieved content is not valid tabular data.
	ErrParse = errors.New("source content not parseable")

	// ErrNoData signals that no rows matched the target date. This is NOT a
	// failure: callers short-circuit the loader and report the no_data
	// outcome with a zero exit code.
	ErrNoData = errors.New("no data for target date")

	// ErrPersistence indicates a load transaction failed to commit.
	// Safe to retry the whole pipeline because all writes are idempotent.
	ErrPersistence = errors.New("persistence failed")

	// ErrConnectionFailed indicates the database connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors and for the no-data signal,
// semantic codes for known errors, and ExitGeneralError (1) for
// unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoData):
		return ExitSuccess
	case errors.Is(err, ErrInvalidDate):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrPersistence):
		return ExitPersistenceFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	errStr := err.Error()

	// Cobra reports flag and argument misuse as plain errors; classify by
	// message so those surface as usage errors, not general failures.
	if isUsageError(errStr) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

func isUsageError(errStr string) bool {
	patterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"missing required argument",
		"required flag",
		"invalid argument",
	}
	for _, p := range patterns {
		if strings.Contains(errStr, p) {
			return true
		}
	}
	return strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)")
}
