// Package retry implements error classification and exponential backoff for
// database connection establishment.
//
// Scope is deliberately narrow: only connecting to PostgreSQL retries.
// The ingestion pipeline itself never retries internally; a failed run is
// reported to the scheduler, and re-running the whole pipeline is safe
// because every write is an idempotent upsert.
package retry
