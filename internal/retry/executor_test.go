package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// countingOp fails with errs in order, then succeeds.
type countingOp struct {
	invocations int
	errs        []error
}

func (o *countingOp) execute(ctx context.Context) error {
	o.invocations++
	if o.invocations <= len(o.errs) {
		return o.errs[o.invocations-1]
	}
	return nil
}

func transientErr() error {
	return &pgconn.PgError{Code: "08006", Message: "connection failure"}
}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(
		NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(maxAttempts,
			WithInitialDelay(1*time.Millisecond),
			WithJitter(0),
		),
	)
}

func TestExecutor_SuccessFirstAttempt(t *testing.T) {
	op := &countingOp{}

	if err := fastExecutor(3).Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	op := &countingOp{errs: []error{transientErr(), transientErr(), transientErr()}}

	if err := fastExecutor(5).Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success after retries, got: %v", err)
	}
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	fatal := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	op := &countingOp{errs: []error{fatal, fatal, fatal}}

	err := fastExecutor(5).Execute(context.Background(), op.execute)
	if err == nil {
		t.Fatal("Expected fatal error")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42601" {
		t.Errorf("Expected the fatal error back, got: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Fatal errors must not be retried, got %d invocations", op.invocations)
	}
}

func TestExecutor_ExhaustedRetries(t *testing.T) {
	errs := make([]error, 100)
	for i := range errs {
		errs[i] = transientErr()
	}
	op := &countingOp{errs: errs}

	err := fastExecutor(3).Execute(context.Background(), op.execute)
	if err == nil {
		t.Fatal("Expected error after exhausted retries")
	}
	// Initial attempt plus 3 retries.
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	op := &countingOp{errs: []error{transientErr(), transientErr(), transientErr()}}
	executor := NewExecutor(
		NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(10,
			WithInitialDelay(1*time.Hour), // never elapses
			WithJitter(0),
		),
	)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := executor.Execute(ctx, op.execute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected cancellation during backoff after 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	var attempts []int
	var delays []time.Duration

	op := &countingOp{errs: []error{transientErr(), transientErr()}}
	executor := fastExecutor(5).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		delays = append(delays, delay)
	})

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatal(err)
	}

	if len(attempts) != 2 {
		t.Fatalf("Expected 2 retry notifications, got %d", len(attempts))
	}
	if attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("Attempt numbers = %v, want [0 1]", attempts)
	}
	for _, d := range delays {
		if d <= 0 {
			t.Errorf("Delay should be positive, got %v", d)
		}
	}
}

func TestExecutor_WithOnRetryDoesNotMutate(t *testing.T) {
	original := fastExecutor(3)
	derived := original.WithOnRetry(func(int, error, time.Duration) {})

	if original == derived {
		t.Error("WithOnRetry must return a new instance")
	}
	if original.onRetry != nil {
		t.Error("Original executor must remain callback-free")
	}
}

func TestNewExecutor_NilArguments(t *testing.T) {
	strategy := NewExponentialBackoff(3)

	for _, tt := range []struct {
		name string
		f    func()
	}{
		{"nil classifier", func() { NewExecutor(nil, strategy) }},
		{"nil strategy", func() { NewExecutor(NewPostgreSQLErrorClassifier(), nil) }},
	} {
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
