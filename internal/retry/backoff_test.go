package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	if b.MaxAttempts() != 3 {
		t.Errorf("MaxAttempts = %d, want 3", b.MaxAttempts())
	}
	if b.InitialDelay() != 100*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 100ms", b.InitialDelay())
	}
	if b.MaxDelay() != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", b.MaxDelay())
	}
}

func TestExponentialBackoff_DoublesWithoutJitter(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithJitter(0),
	)

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}
	for attempt, want := range expected {
		if got := b.NextDelay(attempt); got != want {
			t.Errorf("NextDelay(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestExponentialBackoff_CapsAtMaxDelay(t *testing.T) {
	b := NewExponentialBackoff(20,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(1*time.Second),
		WithJitter(0),
	)

	if got := b.NextDelay(10); got != 1*time.Second {
		t.Errorf("NextDelay(10) = %v, want cap of 1s", got)
	}
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(1*time.Second),
		WithJitter(0.1),
	)

	// With 10% jitter the first delay must stay within [900ms, 1100ms].
	for i := 0; i < 100; i++ {
		delay := b.NextDelay(0)
		if delay < 900*time.Millisecond || delay > 1100*time.Millisecond {
			t.Fatalf("NextDelay(0) = %v outside jitter bounds", delay)
		}
	}
}

func TestExponentialBackoff_DeterministicJitterFunc(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{"low extreme", 0.0, 900 * time.Millisecond},
		{"midpoint is exact", 0.5, 1000 * time.Millisecond},
		{"high side", 0.75, 1050 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(5,
				WithInitialDelay(1*time.Second),
				WithJitter(0.1),
				WithJitterFunc(func() float64 { return tt.random }),
			)
			if got := b.NextDelay(0); got != tt.want {
				t.Errorf("NextDelay(0) = %v, want %v", got, tt.want)
			}
		})
	}
}
