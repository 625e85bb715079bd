package runner

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
)

// schedule runs the Fetch Loop Scheduler until r.stop is closed (spec.md
// §4.3, §7). Each iteration runs one fetch-process-commit cycle, then a
// throttled heartbeat, then checks for a stop signal before re-posting
// itself — a plain for loop, not recursion, so the goroutine stack never
// grows with the number of cycles.
func (r *Runner) schedule(ctx context.Context) {
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		if err := r.cycle(ctx); err != nil {
			if r.handleCycleError(ctx, err) {
				return
			}
		}

		if err := r.group.Heartbeat(ctx, r.heartbeatInterval); err != nil {
			r.log.Warn(ctx, "heartbeat failed", "error", err)
		}

		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleCycleError applies the error taxonomy from spec.md §7: rebalance
// signals and repositioning errors are recovered locally and the loop
// continues; an unknown member clears the member ID and rejoins at once;
// a failed rejoin or anything else is fatal and stops the Runner.
func (r *Runner) handleCycleError(ctx context.Context, err error) (fatal bool) {
	switch {
	case kafka.IsRepositioning(err):
		r.log.Debug(ctx, "offset repositioned by collaborator, continuing", "error", err)
		return false

	case kafka.IsUnknownMember(err):
		r.log.Warn(ctx, "unknown member id, rejoining", "error", err)
		r.group.SetMemberID("")
		if joinErr := r.joinAndSync(ctx); joinErr != nil {
			r.log.Error(ctx, "rejoin after unknown member id failed", "error", joinErr)
			r.onCrash(joinErr)
			return true
		}
		return false

	case kafka.IsRebalanceSignal(err):
		r.log.Info(ctx, "rebalance in progress, rejoining", "error", err)
		if joinErr := r.joinAndSync(ctx); joinErr != nil {
			r.log.Error(ctx, "rejoin after rebalance signal failed", "error", joinErr)
			r.onCrash(joinErr)
			return true
		}
		return false

	case kafka.IsFatal(err):
		r.log.Error(ctx, "fatal consumer group error, stopping runner", "error", err)
		r.onCrash(err)
		return true

	default:
		r.log.Error(ctx, "fetch cycle failed, stopping runner", "error", err)
		r.onCrash(err)
		return true
	}
}

// cycle runs one fetch, dispatches its batches, and commits — the unit the
// scheduler repeats. It is itself retried under the Runner's retry policy
// (spec.md §4.3): rebalance/unknown-member/repositioning/fatal errors bail
// out immediately for handleCycleError to route, while any other error is
// retried with backoff until it succeeds or the retry budget is exhausted,
// at which point the last error is returned and becomes fatal.
func (r *Runner) cycle(ctx context.Context) error {
	return runRetriable(ctx, r.retryPolicy, func(ctx context.Context, rc *RetryContext) error {
		err := r.runCycleOnce(ctx)
		if err == nil {
			return nil
		}
		if kafka.IsRepositioning(err) || kafka.IsUnknownMember(err) ||
			kafka.IsRebalanceSignal(err) || kafka.IsFatal(err) {
			return rc.Bail(err)
		}
		return err
	})
}

// runCycleOnce runs a single fetch-dispatch-commit pass with no retry of
// its own.
func (r *Runner) runCycleOnce(ctx context.Context) error {
	start := time.Now()

	batches, err := r.group.Fetch(ctx)
	if err != nil {
		return err
	}

	r.emitFetch(ctx, len(batches), time.Since(start))

	if len(batches) == 0 {
		return nil
	}

	if err := r.dispatch(ctx, batches); err != nil {
		return err
	}

	if r.autoCommit {
		if err := r.group.CommitOffsets(ctx); err != nil {
			r.log.Warn(ctx, "post-cycle commit failed", "error", err)
		}
	}

	return nil
}
