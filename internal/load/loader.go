// Package load derives the four normalized record sets from a filtered batch
// and applies them to PostgreSQL through idempotent upserts.
package load

import (
	"context"
	"fmt"

	"github.com/retailops/salesingest/pkg/salesingest"
)

// Loader implements salesingest.Loader.
//
// The four steps run strictly in referential order — customers, products,
// sales, sale_items — inside ONE transaction, so the tables reflect a
// consistent snapshot of the batch or none of its mutations are visible.
//
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
// Create separate instances for concurrent batches (and never run two loads
// for the same date in parallel; the scheduler enforces that).
type Loader struct {
	conn    salesingest.DBConn
	logger  salesingest.Logger
	onState func(salesingest.RunState)
}

// LoaderOption configures optional Loader behavior.
type LoaderOption func(*Loader)

// WithStateFunc registers a callback invoked as the loader moves through its
// per-table states. Used by the pipeline runner to track run progress.
func WithStateFunc(f func(salesingest.RunState)) LoaderOption {
	return func(l *Loader) {
		l.onState = f
	}
}

// NewLoader creates a Loader. Panics on nil dependencies: those are
// programmer errors that should fail loudly at startup, not surface as nil
// dereferences mid-batch.
func NewLoader(conn salesingest.DBConn, logger salesingest.Logger, opts ...LoaderOption) *Loader {
	if conn == nil {
		panic("conn cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	l := &Loader{conn: conn, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies the row set to the normalized schema and reports per-table
// counts. Any failure returns an error wrapping salesingest.ErrPersistence
// and leaves the store untouched; re-running the whole pipeline is safe.
func (l *Loader) Load(ctx context.Context, set *salesingest.RowSet) (salesingest.LoadSummary, error) {
	var summary salesingest.LoadSummary

	if set.Len() == 0 {
		// Callers short-circuit on the empty signal before ever reaching
		// the loader; getting here is a bug in the caller.
		return summary, fmt.Errorf("load invoked with an empty row set")
	}

	customers := deriveCustomers(set.Rows)
	products := deriveProducts(set.Rows)
	sales := deriveSales(set.Rows)
	items := deriveSaleItems(set.Rows)

	tx, err := l.conn.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: begin transaction: %v", salesingest.ErrPersistence, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	l.setState(salesingest.StateLoadingCustomers)
	if summary.Customers, err = l.upsertCustomers(ctx, tx, customers); err != nil {
		return summary, err
	}

	l.setState(salesingest.StateLoadingProducts)
	if summary.Products, err = l.upsertProducts(ctx, tx, products); err != nil {
		return summary, err
	}

	l.setState(salesingest.StateLoadingSales)
	if summary.Sales, err = l.upsertSales(ctx, tx, sales); err != nil {
		return summary, err
	}

	l.setState(salesingest.StateLoadingSaleItems)
	if summary.SaleItems, err = l.upsertSaleItems(ctx, tx, items); err != nil {
		return summary, err
	}

	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("%w: commit batch: %v", salesingest.ErrPersistence, err)
	}
	committed = true

	l.logger.Info("Load complete: %d customers, %d products, %d sales, %d sale items",
		summary.Customers, summary.Products, summary.Sales, summary.SaleItems)
	return summary, nil
}

func (l *Loader) setState(state salesingest.RunState) {
	if l.onState != nil {
		l.onState(state)
	}
}

func (l *Loader) upsertCustomers(ctx context.Context, tx salesingest.Tx, customers []Customer) (int, error) {
	l.logger.Verbose("Upserting %d customers", len(customers))
	for _, c := range customers {
		err := tx.Exec(ctx, upsertCustomerSQL,
			c.CustomerID, c.FirstName, c.LastName, c.Email,
			c.Gender, c.AgeRange, c.Country, c.SignupDate)
		if err != nil {
			return 0, fmt.Errorf("%w: customers step, customer %q: %v", salesingest.ErrPersistence, c.CustomerID, err)
		}
	}
	l.logger.Info("CUSTOMERS: %d rows processed", len(customers))
	return len(customers), nil
}

func (l *Loader) upsertProducts(ctx context.Context, tx salesingest.Tx, products []Product) (int, error) {
	l.logger.Verbose("Upserting %d products", len(products))
	for _, p := range products {
		err := tx.Exec(ctx, upsertProductSQL,
			p.ProductID, p.ProductName, p.Category, p.Brand,
			p.Color, p.Size, p.CatalogPrice.String(), p.CostPrice.String())
		if err != nil {
			return 0, fmt.Errorf("%w: products step, product %q: %v", salesingest.ErrPersistence, p.ProductID, err)
		}
	}
	l.logger.Info("PRODUCTS: %d rows processed", len(products))
	return len(products), nil
}

func (l *Loader) upsertSales(ctx context.Context, tx salesingest.Tx, sales []Sale) (int, error) {
	l.logger.Verbose("Upserting %d sales", len(sales))
	for _, s := range sales {
		err := tx.Exec(ctx, upsertSaleSQL,
			s.SaleID, s.SaleDate.Time(), s.CustomerID,
			s.Channel, s.ChannelCampaigns, s.TotalAmount.String())
		if err != nil {
			return 0, fmt.Errorf("%w: sales step, sale %q: %v", salesingest.ErrPersistence, s.SaleID, err)
		}
	}
	l.logger.Info("SALES: %d rows processed", len(sales))
	return len(sales), nil
}

func (l *Loader) upsertSaleItems(ctx context.Context, tx salesingest.Tx, items []SaleItem) (int, error) {
	l.logger.Verbose("Upserting %d sale items", len(items))
	for _, it := range items {
		err := tx.Exec(ctx, upsertSaleItemSQL,
			it.ItemID, it.SaleID, it.ProductID, it.Quantity,
			it.UnitPrice.String(), it.OriginalPrice.String(),
			it.DiscountApplied, it.DiscountPercent.String(), it.ItemTotal.String())
		if err != nil {
			return 0, fmt.Errorf("%w: sale_items step, item %q: %v", salesingest.ErrPersistence, it.ItemID, err)
		}
	}
	l.logger.Info("SALE_ITEMS: %d rows processed", len(items))
	return len(items), nil
}

// Verify Loader implements the contract at compile time
var _ salesingest.Loader = (*Loader)(nil)
