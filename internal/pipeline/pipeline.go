// Package pipeline orchestrates one ingestion run: fetch the daily batch
// from object storage, filter it to the target date, and load the filtered
// rows into the normalized schema.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailops/salesingest/internal/load"
	"github.com/retailops/salesingest/pkg/salesingest"
)

// ConnectorFunc acquires a database connection for the load phase.
// The Runner releases it unconditionally when the phase ends.
type ConnectorFunc func(ctx context.Context) (salesingest.DBConn, error)

// Runner drives the extract → load sequence and tracks run state.
//
// Execution is single-threaded and strictly sequential: extraction runs to
// completion, then the loader's steps run in order. Correctness of the
// referential ordering and of the recomputed sale totals depends on this
// sequencing. Concurrent runs for the same target date require external
// mutual exclusion (the scheduler's single-active-run policy).
//
// Thread-Safety: NOT safe for concurrent use. One Runner per run.
type Runner struct {
	config    *salesingest.Config
	store     salesingest.ObjectStore
	extractor salesingest.Extractor
	connect   ConnectorFunc
	logger    salesingest.Logger
	state     salesingest.RunState
}

// NewRunner creates a Runner with all dependencies injected.
// Panics on nil dependencies: wiring bugs should fail at startup.
func NewRunner(
	config *salesingest.Config,
	store salesingest.ObjectStore,
	extractor salesingest.Extractor,
	connect ConnectorFunc,
	logger salesingest.Logger,
) *Runner {
	if config == nil {
		panic("config cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	if connect == nil {
		panic("connect cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{
		config:    config,
		store:     store,
		extractor: extractor,
		connect:   connect,
		logger:    logger,
		state:     salesingest.StateIdle,
	}
}

// State returns the current run state.
func (r *Runner) State() salesingest.RunState {
	return r.state
}

func (r *Runner) setState(state salesingest.RunState) {
	r.state = state
}

// Run executes the full pipeline for one target date.
//
// The no-data outcome is not an error: the result carries StatusNoData and
// the loader is never invoked. All genuine failures return an error
// classified by the salesingest sentinels (with the run already marked
// Failed) and identify the date and phase, so the scheduler can decide
// whether a blind retry is worthwhile.
func (r *Runner) Run(ctx context.Context, target salesingest.Date) (*salesingest.RunResult, error) {
	result := &salesingest.RunResult{
		RunID:      uuid.NewString(),
		TargetDate: target,
	}

	r.logger.Info("Starting ingestion run %s (target date %s)", result.RunID, target)

	set, err := r.Extract(ctx, target)
	if err != nil {
		if errors.Is(err, salesingest.ErrNoData) {
			result.Status = salesingest.StatusNoData
			r.logger.Info("Run %s finished: no data for %s", result.RunID, target)
			return result, nil
		}
		return nil, err
	}
	result.Rows = set.Len()

	summary, err := r.Load(ctx, set)
	if err != nil {
		return nil, err
	}

	result.Summary = summary
	result.Status = salesingest.StatusSuccess
	r.logger.Info("Run %s finished successfully", result.RunID)
	return result, nil
}

// Extract fetches the daily batch from object storage and filters it to the
// target date. No write happens during this phase, so every failure here
// aborts the run with zero partial-state risk.
func (r *Runner) Extract(ctx context.Context, target salesingest.Date) (*salesingest.RowSet, error) {
	r.setState(salesingest.StateExtracting)

	exists, err := r.store.BucketExists(ctx, r.config.Bucket)
	if err != nil {
		r.setState(salesingest.StateFailed)
		return nil, err
	}
	if !exists {
		r.setState(salesingest.StateFailed)
		return nil, fmt.Errorf("%w: bucket %q does not exist", salesingest.ErrSourceUnavailable, r.config.Bucket)
	}

	r.logger.Info("Downloading %s from bucket %s", r.config.ObjectKey, r.config.Bucket)
	raw, err := r.store.GetObject(ctx, r.config.Bucket, r.config.ObjectKey)
	if err != nil {
		r.setState(salesingest.StateFailed)
		return nil, err
	}

	set, err := r.extractor.Extract(raw, target)
	if err != nil {
		if errors.Is(err, salesingest.ErrNoData) {
			r.setState(salesingest.StateDone)
		} else {
			r.setState(salesingest.StateFailed)
		}
		return nil, err
	}

	r.setState(salesingest.StateExtracted)
	return set, nil
}

// Load acquires a database connection, applies the row set, and releases the
// connection on every exit path.
func (r *Runner) Load(ctx context.Context, set *salesingest.RowSet) (salesingest.LoadSummary, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		r.setState(salesingest.StateFailed)
		return salesingest.LoadSummary{}, fmt.Errorf("target date %s: %w", set.TargetDate, err)
	}
	defer conn.Close()

	loader := load.NewLoader(conn, r.logger, load.WithStateFunc(r.setState))
	summary, err := loader.Load(ctx, set)
	if err != nil {
		r.setState(salesingest.StateFailed)
		return summary, fmt.Errorf("target date %s: %w", set.TargetDate, err)
	}

	r.setState(salesingest.StateDone)
	return summary, nil
}
