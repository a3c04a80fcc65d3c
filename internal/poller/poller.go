// Package poller provides the fixed-interval refresh primitive behind the
// live console views. A schedule is a cancellable task: Start returns a
// disposer, and whoever starts a schedule owns stopping it.
package poller

import (
	"context"
	"sync"
	"time"
)

// Stop cancels the schedule. No new runs start after it returns; a run that
// is already underway observes its context cancelled. Safe to call twice.
type Stop func()

// Start invokes fn once immediately and then on every elapsed interval until
// Stop is called or ctx is done. Runs are sequential on a single goroutine:
// a refresh slower than the interval skips ticks instead of stacking
// overlapping requests for the same resource.
func Start(ctx context.Context, interval time.Duration, fn func(context.Context)) Stop {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}
