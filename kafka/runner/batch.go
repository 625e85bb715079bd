package runner

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/pipeline"
)

// dispatch runs the Batch Dispatcher over one fetch cycle's batches,
// processing distinct partitions in parallel bounded by the concurrency
// limiter (spec.md §4.4, §4.5). Messages within a single partition's batch
// are always processed strictly in order.
func (r *Runner) dispatch(ctx context.Context, batches []kafka.Batch) error {
	r.consuming.Store(true)
	defer r.consuming.Store(false)

	tasks := make([]func() error, len(batches))
	for i, batch := range batches {
		batch := batch
		tasks[i] = func() error { return r.processBatch(ctx, batch) }
	}

	for _, err := range r.limiter.group(ctx, tasks) {
		if err != nil {
			return err
		}
	}

	return nil
}

// processBatch runs one batch through the START_BATCH_PROCESS /
// END_BATCH_PROCESS instrumentation envelope and the configured handler,
// built atop pipeline.Pipeline the way the rest of this module composes
// before/after/error-handling stages.
func (r *Runner) processBatch(ctx context.Context, batch kafka.Batch) error {
	start := time.Now()
	var procErr error

	pipeline.NewWithOptions(pipeline.WithContext(ctx)).
		Before(func() { r.emitBatchStart(ctx, batch) }).
		Then(func(ctx context.Context) error { return r.processOneBatch(ctx, batch) }).
		ThenCatch(func(err error) error {
			r.log.Error(ctx, "batch processing failed",
				"topic", batch.Topic, "partition", batch.Partition, "error", err)
			return err
		}).
		After(func() { r.emitBatchEnd(ctx, batch, time.Since(start)) }).
		Run(func(err error) { procErr = err })

	return procErr
}

func (r *Runner) processOneBatch(ctx context.Context, batch kafka.Batch) error {
	if r.eachBatch != nil {
		return r.processEachBatch(ctx, batch)
	}
	return r.processEachMessage(ctx, batch)
}

// processEachMessage feeds a batch's messages to eachMessage one at a time
// in offset order, resolving each message's offset only after its handler
// succeeds, and auto-committing per the configured policy (spec.md §4.4).
// A handler error persists progress up to (but not including) the failing
// message via an explicit commit, then stops the batch, leaving the failing
// message's offset uncommitted for redelivery.
func (r *Runner) processEachMessage(ctx context.Context, batch kafka.Batch) error {
	tp := batch.TopicPartition()

	for _, msg := range batch.Messages {
		if r.group.HasSeekOffset(tp) {
			r.log.Debug(ctx, "partition seeked mid-batch, abandoning remainder",
				"topic", batch.Topic, "partition", batch.Partition)
			return nil
		}

		if err := r.eachMessage(ctx, batch.Topic, batch.Partition, msg); err != nil {
			r.commitOnError(ctx)
			return err
		}

		r.group.ResolveOffset(tp, msg.Offset)

		if r.autoCommit {
			if err := r.group.CommitOffsetsIfNecessary(ctx); err != nil {
				r.log.Warn(ctx, "commit failed", "error", err)
			}
		}
	}

	return nil
}

// processEachBatch hands the whole batch to eachBatch through a
// BatchControl. On success, it resolves the batch's last offset when
// eachBatchAutoResolve is enabled (spec.md §4.4, §6, default true); on
// failure it flushes whatever offsets the handler already resolved before
// propagating the error, mirroring processEachMessage's commit-on-error
// behavior.
func (r *Runner) processEachBatch(ctx context.Context, batch kafka.Batch) error {
	control := &batchControl{runner: r, tp: batch.TopicPartition()}

	if err := r.eachBatch(ctx, batch, control); err != nil {
		r.commitOnError(ctx)
		return err
	}

	if r.eachBatchAutoResolve {
		r.group.ResolveOffset(batch.TopicPartition(), batch.LastOffset())
	}

	return nil
}

// commitOnError flushes resolved-but-uncommitted offsets after a handler
// failure so that progress already made inside the batch survives the
// error, regardless of whether auto-commit is enabled for the steady-state
// path (spec.md §4.4).
func (r *Runner) commitOnError(ctx context.Context) {
	if err := r.group.CommitOffsets(ctx); err != nil {
		r.log.Warn(ctx, "commit after handler error failed", "error", err)
	}
}

func (r *Runner) emitBatchStart(ctx context.Context, batch kafka.Batch) {
	r.emitter.Emit(ctx, group.Event{
		Name: group.EventStartBatchProc,
		Payload: group.BatchProcessPayload{
			Topic:       batch.Topic,
			Partition:   batch.Partition,
			FirstOffset: batch.FirstOffset(),
			LastOffset:  batch.LastOffset(),
			OffsetLag:   batch.OffsetLag(),
			BatchSize:   len(batch.Messages),
		},
	})
}

func (r *Runner) emitBatchEnd(ctx context.Context, batch kafka.Batch, elapsed time.Duration) {
	r.emitter.Emit(ctx, group.Event{
		Name: group.EventEndBatchProcess,
		Payload: group.BatchProcessPayload{
			Topic:       batch.Topic,
			Partition:   batch.Partition,
			FirstOffset: batch.FirstOffset(),
			LastOffset:  batch.LastOffset(),
			OffsetLag:   batch.OffsetLag(),
			BatchSize:   len(batch.Messages),
			Duration:    elapsed,
		},
	})
}

// batchControl adapts a Runner and a fixed topic-partition to
// kafka.BatchControl, handed to an eachBatch handler.
type batchControl struct {
	runner *Runner
	tp     kafka.TopicPartition
}

func (c *batchControl) ResolveOffset(offset int64) {
	c.runner.group.ResolveOffset(c.tp, offset)
}

func (c *batchControl) Heartbeat(ctx context.Context) {
	if err := c.runner.group.Heartbeat(ctx, c.runner.heartbeatInterval); err != nil {
		c.runner.log.Warn(ctx, "heartbeat failed", "error", err)
	}
}

func (c *batchControl) CommitOffsetsIfNecessary(ctx context.Context, offsets ...kafka.OffsetsByTopicPartition) error {
	if len(offsets) > 0 {
		return c.runner.group.CommitOffsets(ctx, offsets...)
	}
	return c.runner.group.CommitOffsetsIfNecessary(ctx)
}

func (c *batchControl) UncommittedOffsets() kafka.OffsetsByTopicPartition {
	return c.runner.group.UncommittedOffsets()
}

func (c *batchControl) IsRunning() bool {
	return c.runner.IsRunning()
}

func (c *batchControl) IsStale() bool {
	return c.runner.group.HasSeekOffset(c.tp)
}
