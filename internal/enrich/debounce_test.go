package enrich

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerFiresAfterQuietPeriod(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	d.Trigger(func(ctx context.Context) {
		fired.Add(1)
	})

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func(ctx context.Context) {
			fired.Add(1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1 (rapid triggers must coalesce)", got)
	}
}

func TestDebouncerCancelsInflightOnRetrigger(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	cancelled := make(chan struct{})

	d.Trigger(func(ctx context.Context) {
		close(started)
		select {
		case <-ctx.Done():
			close(cancelled)
		case <-time.After(2 * time.Second):
		}
	})

	<-started
	d.Trigger(func(ctx context.Context) {})

	select {
	case <-cancelled:
	case <-time.After(1 * time.Second):
		t.Error("in-flight invocation was not cancelled by retrigger")
	}
}

func TestDebouncerStopDiscardsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func(ctx context.Context) {
		fired.Add(1)
	})
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after Stop, want 0", got)
	}
}
