package runner

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// limiter bounds parallel execution of per-partition batch-processing
// tasks to at most n concurrently, admitting queued tasks in FIFO order
// (spec.md §4.5). Backed by semaphore.Weighted, whose Acquire queues
// waiters in arrival order, giving FIFO admission without a hand-rolled
// queue.
type limiter struct {
	sem *semaphore.Weighted
}

func newLimiter(n int) *limiter {
	if n < 1 {
		n = 1
	}
	return &limiter{sem: semaphore.NewWeighted(int64(n))}
}

// run acquires a slot, runs task, and releases the slot before returning
// task's error. A context cancellation while waiting for a slot returns
// the context's error immediately without ever running task.
func (l *limiter) run(ctx context.Context, task func() error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)
	return task()
}

// group runs tasks with bounded concurrency and waits for all of them,
// returning every error in submission order (nil where a task succeeded).
// A rejected/failed task releases its slot immediately so the next queued
// task can start — semaphore.Release happens in run's defer regardless of
// task's outcome.
func (l *limiter) group(ctx context.Context, tasks []func() error) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		i, task := i, task
		go func() {
			defer wg.Done()
			errs[i] = l.run(ctx, task)
		}()
	}

	wg.Wait()
	return errs
}
