package salesingest

import "context"

// ObjectStore abstracts the object storage collaborator. The core calls it
// only at the start of extraction; it never creates bucket infrastructure.
type ObjectStore interface {
	// BucketExists reports whether the bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// GetObject fetches the full object content in one blocking read.
	// Returns an error wrapping ErrSourceUnavailable when the bucket or
	// key is absent.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Extractor parses raw tabular bytes and filters them to one calendar date.
// Pure transformation: no side effects beyond logging.
type Extractor interface {
	// Extract returns the rows whose date component equals target.
	// Returns an error wrapping ErrNoData when zero rows match and an
	// error wrapping ErrParse when the content is not valid tabular data.
	Extract(raw []byte, target Date) (*RowSet, error)
}

// Loader applies a non-empty RowSet to the normalized schema through
// idempotent upserts. Callers short-circuit on the empty signal; Load is
// never invoked with zero rows.
type Loader interface {
	Load(ctx context.Context, set *RowSet) (LoadSummary, error)
}

// DBConn abstracts the relational store connection consumed by the loader.
// This decouples the core from pgx-specific types.
//
// Thread-Safety: implementations backed by a connection pool are safe for
// concurrent use, but the loader itself issues strictly sequential writes.
type DBConn interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying connection resources.
	Close()
}

// Tx is a database transaction. All upserts of a batch execute inside one
// transaction so the four tables reflect the batch atomically.
type Tx interface {
	// Exec executes a statement without returning rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Safe to call after Commit; the
	// error is ignored in that case by convention.
	Rollback(ctx context.Context) error
}
