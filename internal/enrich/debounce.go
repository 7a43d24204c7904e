package enrich

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceQuietPeriod is how long input must stay unchanged
// before a speculative fetch fires.
const DefaultDebounceQuietPeriod = 350 * time.Millisecond

// Debouncer delays a function until its input has been quiet for a
// fixed period. Triggering again before the quiet period elapses
// discards the pending call; triggering while a call is running cancels
// that call's context. Classic debounce-with-cancellation, decoupled
// from any particular input source.
type Debouncer struct {
	quiet time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer with the given quiet period.
// A non-positive period falls back to the default.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultDebounceQuietPeriod
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet period. Any pending or
// in-flight invocation is cancelled first. fn receives a context that
// is cancelled when a newer trigger supersedes it.
func (d *Debouncer) Trigger(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.timer = time.AfterFunc(d.quiet, func() {
		// The context may already be cancelled by a newer trigger;
		// fn is expected to honor it.
		fn(ctx)
	})
}

// Stop discards any pending invocation and cancels an in-flight one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
