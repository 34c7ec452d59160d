package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_Transitions(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 6, 6, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	boom := errors.New("connection refused")
	fail := func() error { return boom }

	if err := b.Execute(fail, nil); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(fail, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short circuit, got err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{FailureThreshold: 1})
	notFound := errors.New("not found")

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return notFound }, func(err error) bool { return errors.Is(err, notFound) })
		if !errors.Is(err, notFound) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestCircuitBreaker_NilRunsThrough(t *testing.T) {
	var b *CircuitBreaker
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
