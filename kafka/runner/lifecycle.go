package runner

import (
	"context"
)

// Start launches the join/sync handshake and the fetch loop in a
// background goroutine and returns immediately, mirroring KafkaJS's own
// run(): the caller is not blocked on the group actually being joined
// (spec.md §4.1, §4.2). Join/sync failures that exhaust the retry policy
// are logged and leave the Runner stopped; they are not returned here
// since Start has already returned by the time they would occur. Calling
// Start on an already-running Runner is a no-op.
func (r *Runner) Start(ctx context.Context) error {
	if r.running.Swap(true) {
		return nil
	}

	go r.loop(ctx)

	return nil
}

// Stop signals the fetch loop to exit after its current cycle, waits for
// any in-flight batch to finish dispatching, and leaves the consumer group
// (spec.md §4.1). Stop on a Runner that isn't running is a no-op.
func (r *Runner) Stop(ctx context.Context) error {
	r.stopMu.Lock()
	defer r.stopMu.Unlock()

	if !r.running.Load() {
		return nil
	}

	close(r.stop)

	select {
	case <-r.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.running.Store(false)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	// leave is best-effort (spec.md §9 Open Question): swallowed so a
	// broker hiccup on the way out never fails a graceful shutdown, but
	// logged so it isn't silently invisible.
	if err := r.group.Leave(ctx); err != nil {
		r.log.Debug(ctx, "leave group failed", "error", err)
	}

	return nil
}

// loop performs the initial join/sync handshake and then runs the Fetch
// Loop Scheduler until stop is signaled, closing done once it has drained.
// A join failure (retry policy exhausted, or a fatal error) stops the
// Runner without ever entering the fetch loop.
func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	if err := r.joinAndSync(ctx); err != nil {
		r.log.Error(ctx, "initial join/sync failed, runner stopped", "error", err)
		r.onCrash(err)
		return
	}

	select {
	case <-r.stop:
		return
	default:
	}

	r.schedule(ctx)
}
