package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailops/salesingest/pkg/salesingest"
)

// PoolAdapter adapts *pgxpool.Pool to implement the salesingest.DBConn
// interface. This keeps pgx-specific types out of the core.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) salesingest.DBConn {
	return &PoolAdapter{pool: pool}
}

// Begin starts a transaction.
func (p *PoolAdapter) Begin(ctx context.Context) (salesingest.Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txAdapter{tx: tx}, nil
}

// Ping verifies the connection is alive.
func (p *PoolAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the underlying pool.
func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// txAdapter adapts pgx.Tx to implement salesingest.Tx.
type txAdapter struct {
	tx pgx.Tx
}

// Exec executes a statement without returning rows.
func (t *txAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

// Commit commits the transaction.
func (t *txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback aborts the transaction.
func (t *txAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Verify PoolAdapter implements DBConn at compile time
var _ salesingest.DBConn = (*PoolAdapter)(nil)
