package runner

import (
	stderrors "errors"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/protocol"
)

// ErrHandlerConflict is returned when both a message handler and a batch
// handler are configured: spec.md §4.4 treats these as mutually exclusive
// processing modes, never combined.
var ErrHandlerConflict = stderrors.New("runner: eachMessage and eachBatch handlers are mutually exclusive")

// ErrNoHandler is returned when neither a message handler nor a batch
// handler has been configured.
var ErrNoHandler = stderrors.New("runner: no eachMessage or eachBatch handler configured")

// Option configures a Runner.
type Option func(*Runner) error

// defaults returns the Runner's default configuration, mirroring
// KafkaJS's Runner defaults (spec.md §4).
func defaults() []Option {
	return []Option{
		WithLogger(protocol.NopLogger{}),
		WithEmitter(group.NopEmitter{}),
		WithConcurrency(1),
		WithRetryPolicy(DefaultRetryPolicy()),
		WithHeartbeatInterval(3 * time.Second),
		WithAutoCommit(true),
		WithEachBatchAutoResolve(true),
		WithOnCrash(func(error) {}),
	}
}

// WithGroup sets the ConsumerGroup collaborator driven by the Runner.
// Required.
func WithGroup(g group.Group) Option {
	return func(r *Runner) error {
		if g == nil {
			return stderrors.New("runner: group cannot be nil")
		}
		r.group = g
		return nil
	}
}

// WithEachMessage sets a per-message handler. Mutually exclusive with
// WithEachBatch (spec.md §4.4).
func WithEachMessage(handler kafka.MessageHandler) Option {
	return func(r *Runner) error {
		if handler == nil {
			return stderrors.New("runner: eachMessage handler cannot be nil")
		}
		if r.eachBatch != nil {
			return ErrHandlerConflict
		}
		r.eachMessage = handler
		return nil
	}
}

// WithEachBatch sets a per-batch handler, giving the handler direct control
// over offset resolution and mid-batch commits (spec.md §4.4). Mutually
// exclusive with WithEachMessage.
func WithEachBatch(handler kafka.BatchHandler) Option {
	return func(r *Runner) error {
		if handler == nil {
			return stderrors.New("runner: eachBatch handler cannot be nil")
		}
		if r.eachMessage != nil {
			return ErrHandlerConflict
		}
		r.eachBatch = handler
		return nil
	}
}

// WithLogger sets the Runner's logger.
func WithLogger(log protocol.Logger) Option {
	return func(r *Runner) error {
		if log == nil {
			return stderrors.New("runner: logger cannot be nil")
		}
		r.log = log
		return nil
	}
}

// WithEmitter sets the instrumentation emitter receiving GROUP_JOIN, FETCH,
// START_BATCH_PROCESS and END_BATCH_PROCESS events (spec.md §4, §6).
func WithEmitter(emitter group.InstrumentationEmitter) Option {
	return func(r *Runner) error {
		if emitter == nil {
			return stderrors.New("runner: emitter cannot be nil")
		}
		r.emitter = emitter
		return nil
	}
}

// WithConcurrency bounds the number of partitions processed in parallel
// per fetch cycle (spec.md §4.5). Values below 1 are clamped to 1.
func WithConcurrency(n int) Option {
	return func(r *Runner) error {
		if n < 1 {
			n = 1
		}
		r.concurrency = n
		return nil
	}
}

// WithRetryPolicy overrides the backoff policy used by the Join/Sync Driver
// and the Fetch Loop Scheduler.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(r *Runner) error {
		r.retryPolicy = policy
		return nil
	}
}

// WithHeartbeatInterval sets how often the Runner drives a heartbeat
// between fetch cycles (spec.md §4.3).
func WithHeartbeatInterval(interval time.Duration) Option {
	return func(r *Runner) error {
		if interval <= 0 {
			return stderrors.New("runner: heartbeat interval must be positive")
		}
		r.heartbeatInterval = interval
		return nil
	}
}

// WithAutoCommit toggles the Runner's own commits (spec.md §4.4): a
// CommitOffsetsIfNecessary after each successfully handled message in
// eachMessage mode, and a CommitOffsets at the end of every fetch cycle
// that dispatched batches. With it disabled, a handler error still commits
// the offsets resolved so far before the error propagates.
func WithAutoCommit(enabled bool) Option {
	return func(r *Runner) error {
		r.autoCommit = enabled
		return nil
	}
}

// WithPartitionsConsumedConcurrently is an alias for WithConcurrency
// matching KafkaJS's configuration name, kept for readability at call
// sites that mirror the original option name.
func WithPartitionsConsumedConcurrently(n int) Option {
	return WithConcurrency(n)
}

// WithEachBatchAutoResolve toggles whether a successful eachBatch handler
// call has its batch's last offset resolved automatically (spec.md §4.4,
// §6; default true). Disabling it puts offset resolution entirely in the
// handler's hands via BatchControl.ResolveOffset.
func WithEachBatchAutoResolve(enabled bool) Option {
	return func(r *Runner) error {
		r.eachBatchAutoResolve = enabled
		return nil
	}
}

// WithOnCrash sets the callback invoked exactly once when the Runner stops
// because of a fatal error: an unrecoverable join/sync failure or a fetch
// cycle error the taxonomy in handleCycleError can't recover from (spec.md
// §4.1, §4.2, §7). The default is a no-op.
func WithOnCrash(onCrash func(error)) Option {
	return func(r *Runner) error {
		if onCrash == nil {
			return stderrors.New("runner: onCrash cannot be nil")
		}
		r.onCrash = onCrash
		return nil
	}
}
