package salesingest

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Pipeline run completed (including the no-data outcome)
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitConnectionError   = 11 // Failed to connect to the database
	ExitSourceUnavailable = 12 // Object storage unreachable or bucket/key missing
	ExitParseError        = 13 // Source content is not valid tabular data
	ExitPersistenceFailed = 14 // A load transaction failed to commit
)

const (
	// DefaultBucket is the object storage bucket holding the daily sales export.
	DefaultBucket = "folder-source"

	// DefaultObjectKey is the key of the sales CSV inside the bucket.
	DefaultObjectKey = "fashion_store_sales.csv"

	// DefaultRetryInitialDelay is the default initial delay before the first
	// connection retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection
	// retry attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of connection
	// retry attempts. Retries apply to connection establishment only; the
	// pipeline itself never retries (re-running is the scheduler's job and
	// is safe because every write is an idempotent upsert).
	DefaultRetryMaxAttempts = 3

	// DefaultRunTimeout bounds a single pipeline run. This is catastrophic
	// failure protection against network hangs, not normal timeout control.
	DefaultRunTimeout = 10 * time.Minute
)

// Run statuses reported to the caller (and to the scheduler via task output).
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
)
