package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/retailops/salesingest/internal/logging"
	"github.com/retailops/salesingest/pkg/salesingest"
)

type fakeStore struct {
	exists    bool
	existsErr error
	content   []byte
	getErr    error
	getCalls  int
}

func (s *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *fakeStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.content, nil
}

type fakeExtractor struct {
	set *salesingest.RowSet
	err error
}

func (e *fakeExtractor) Extract(raw []byte, target salesingest.Date) (*salesingest.RowSet, error) {
	return e.set, e.err
}

type fakeConn struct {
	tx     *fakeTx
	closed bool
}

func (c *fakeConn) Begin(ctx context.Context) (salesingest.Tx, error) {
	if c.tx == nil {
		c.tx = &fakeTx{}
	}
	return c.tx, nil
}

func (c *fakeConn) Ping(ctx context.Context) error { return nil }
func (c *fakeConn) Close()                         { c.closed = true }

type fakeTx struct {
	execs      int
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) error {
	t.execs++
	return nil
}
func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

func testConfig() *salesingest.Config {
	return &salesingest.Config{
		Storage:   salesingest.StorageConfig{Endpoint: "localhost:9000"},
		Database:  salesingest.DatabaseConfig{Host: "localhost", Port: 5432, Database: "sales"},
		Bucket:    "folder-source",
		ObjectKey: "fashion_store_sales.csv",
	}
}

func testDate(t *testing.T) salesingest.Date {
	t.Helper()
	d, err := salesingest.ParseTargetDate("20250616")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testSet(t *testing.T) *salesingest.RowSet {
	t.Helper()
	return &salesingest.RowSet{
		TargetDate: testDate(t),
		Rows: []salesingest.Row{
			{ItemID: "I-1", SaleID: "S-1", CustomerID: "C-1", ProductID: "P-1",
				SaleDate: testDate(t), ItemTotal: salesingest.MustDecimal("19.99")},
		},
	}
}

func newTestRunner(store *fakeStore, extractor *fakeExtractor, conn *fakeConn, connectErr error) *Runner {
	connect := func(ctx context.Context) (salesingest.DBConn, error) {
		if connectErr != nil {
			return nil, connectErr
		}
		return conn, nil
	}
	return NewRunner(testConfig(), store, extractor, connect, logging.NewNullLogger())
}

func TestRunner_Run_Success(t *testing.T) {
	store := &fakeStore{exists: true, content: []byte("csv")}
	conn := &fakeConn{}
	runner := newTestRunner(store, &fakeExtractor{set: testSet(t)}, conn, nil)

	result, err := runner.Run(context.Background(), testDate(t))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Status != salesingest.StatusSuccess {
		t.Errorf("Status = %s, want %s", result.Status, salesingest.StatusSuccess)
	}
	if result.RunID == "" {
		t.Error("Expected a run ID")
	}
	if result.Rows != 1 {
		t.Errorf("Rows = %d, want 1", result.Rows)
	}
	if result.Summary.SaleItems != 1 {
		t.Errorf("SaleItems = %d, want 1", result.Summary.SaleItems)
	}
	if runner.State() != salesingest.StateDone {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateDone)
	}
	if !conn.closed {
		t.Error("Connection must be released after the load phase")
	}
	if !conn.tx.committed {
		t.Error("Expected the batch to be committed")
	}
}

func TestRunner_Run_NoData(t *testing.T) {
	store := &fakeStore{exists: true, content: []byte("csv")}
	extractor := &fakeExtractor{err: fmt.Errorf("%w: 2025-06-16", salesingest.ErrNoData)}
	conn := &fakeConn{}
	runner := newTestRunner(store, extractor, conn, nil)

	result, err := runner.Run(context.Background(), testDate(t))
	if err != nil {
		t.Fatalf("No-data should not be an error, got: %v", err)
	}

	if result.Status != salesingest.StatusNoData {
		t.Errorf("Status = %s, want %s", result.Status, salesingest.StatusNoData)
	}
	if runner.State() != salesingest.StateDone {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateDone)
	}
	// The loader must never be touched on the empty signal.
	if conn.tx != nil {
		t.Error("No transaction should be started for an empty batch")
	}
}

func TestRunner_Run_BucketMissing(t *testing.T) {
	store := &fakeStore{exists: false}
	runner := newTestRunner(store, &fakeExtractor{}, &fakeConn{}, nil)

	_, err := runner.Run(context.Background(), testDate(t))
	if !errors.Is(err, salesingest.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got: %v", err)
	}
	if runner.State() != salesingest.StateFailed {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateFailed)
	}
	if store.getCalls != 0 {
		t.Error("GetObject must not be called when the bucket is missing")
	}
}

func TestRunner_Run_DownloadFailure(t *testing.T) {
	store := &fakeStore{
		exists: true,
		getErr: fmt.Errorf("%w: object missing", salesingest.ErrSourceUnavailable),
	}
	runner := newTestRunner(store, &fakeExtractor{}, &fakeConn{}, nil)

	_, err := runner.Run(context.Background(), testDate(t))
	if !errors.Is(err, salesingest.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got: %v", err)
	}
	if runner.State() != salesingest.StateFailed {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateFailed)
	}
}

func TestRunner_Run_ParseFailure(t *testing.T) {
	store := &fakeStore{exists: true, content: []byte("not a csv")}
	extractor := &fakeExtractor{err: fmt.Errorf("%w: missing columns", salesingest.ErrParse)}
	runner := newTestRunner(store, extractor, &fakeConn{}, nil)

	_, err := runner.Run(context.Background(), testDate(t))
	if !errors.Is(err, salesingest.ErrParse) {
		t.Errorf("Expected ErrParse, got: %v", err)
	}
	if runner.State() != salesingest.StateFailed {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateFailed)
	}
}

func TestRunner_Run_ConnectFailure(t *testing.T) {
	store := &fakeStore{exists: true, content: []byte("csv")}
	connectErr := fmt.Errorf("%w: refused", salesingest.ErrConnectionFailed)
	runner := newTestRunner(store, &fakeExtractor{set: testSet(t)}, nil, connectErr)

	_, err := runner.Run(context.Background(), testDate(t))
	if !errors.Is(err, salesingest.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed, got: %v", err)
	}
	// Failures identify the date so the scheduler log is self-explanatory.
	if !strings.Contains(err.Error(), "2025-06-16") {
		t.Errorf("Expected the target date in the error, got: %v", err)
	}
	if runner.State() != salesingest.StateFailed {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateFailed)
	}
}

func TestRunner_Extract_StateProgression(t *testing.T) {
	store := &fakeStore{exists: true, content: []byte("csv")}
	runner := newTestRunner(store, &fakeExtractor{set: testSet(t)}, &fakeConn{}, nil)

	if runner.State() != salesingest.StateIdle {
		t.Errorf("Initial state = %s, want %s", runner.State(), salesingest.StateIdle)
	}

	if _, err := runner.Extract(context.Background(), testDate(t)); err != nil {
		t.Fatal(err)
	}
	if runner.State() != salesingest.StateExtracted {
		t.Errorf("State = %s, want %s", runner.State(), salesingest.StateExtracted)
	}
}

func TestNewRunner_NilDependencies(t *testing.T) {
	store := &fakeStore{}
	extractor := &fakeExtractor{}
	connect := func(ctx context.Context) (salesingest.DBConn, error) { return &fakeConn{}, nil }
	logger := logging.NewNullLogger()

	tests := []struct {
		name string
		f    func()
	}{
		{"nil config", func() { NewRunner(nil, store, extractor, connect, logger) }},
		{"nil store", func() { NewRunner(testConfig(), nil, extractor, connect, logger) }},
		{"nil extractor", func() { NewRunner(testConfig(), store, nil, connect, logger) }},
		{"nil connect", func() { NewRunner(testConfig(), store, extractor, nil, logger) }},
		{"nil logger", func() { NewRunner(testConfig(), store, extractor, connect, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			tt.f()
		})
	}
}
