package salesingest_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retailops/salesingest/pkg/salesingest"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, salesingest.ExitSuccess},
		{"no data is success", salesingest.ErrNoData, salesingest.ExitSuccess},
		{"wrapped no data", fmt.Errorf("%w: 2025-06-16", salesingest.ErrNoData), salesingest.ExitSuccess},
		{"invalid date", salesingest.ErrInvalidDate, salesingest.ExitUsageError},
		{"invalid config", salesingest.ErrInvalidConfig, salesingest.ExitConfigError},
		{"source unavailable", salesingest.ErrSourceUnavailable, salesingest.ExitSourceUnavailable},
		{"parse error", salesingest.ErrParse, salesingest.ExitParseError},
		{"persistence failed", salesingest.ErrPersistence, salesingest.ExitPersistenceFailed},
		{"connection failed", salesingest.ErrConnectionFailed, salesingest.ExitConnectionError},
		{"wrapped persistence", fmt.Errorf("target date 2025-06-16: %w", salesingest.ErrPersistence), salesingest.ExitPersistenceFailed},
		{"connection refused by message", errors.New("dial tcp: connection refused"), salesingest.ExitConnectionError},
		{"no such host by message", errors.New("lookup db: no such host"), salesingest.ExitConnectionError},
		{"unknown flag", errors.New("unknown flag: --foo"), salesingest.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), salesingest.ExitUsageError},
		{"missing positional arg", errors.New("missing required argument: <run_date>"), salesingest.ExitUsageError},
		{"too many args", errors.New("accepts 1 arg(s), received 2"), salesingest.ExitUsageError},
		{"invalid flag value", errors.New(`invalid argument "abc" for "--timeout"`), salesingest.ExitUsageError},
		{"general error", errors.New("something went wrong"), salesingest.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := salesingest.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_SentinelPrecedence(t *testing.T) {
	// A no-data signal wrapped in extra context must still exit zero.
	err := fmt.Errorf("extraction failed: %w", fmt.Errorf("%w: 2025-01-01", salesingest.ErrNoData))
	if got := salesingest.ExitCodeForError(err); got != salesingest.ExitSuccess {
		t.Errorf("ExitCodeForError(%v) = %d, want %d", err, got, salesingest.ExitSuccess)
	}
}
