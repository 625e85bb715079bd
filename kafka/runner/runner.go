// Package runner implements the Consumer Runner described by spec.md: the
// component that drives a single consumer-group member through join/sync,
// the fetch-process-commit loop, heartbeats, per-partition concurrency, and
// rebalance recovery, independent of any particular ConsumerGroup client.
package runner

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/protocol"
)

// Runner drives a consumer-group member's lifecycle: Start joins the group
// and launches the fetch loop in the background; Stop signals the loop to
// drain the in-flight batch and leave the group. Runner implements
// protocol.Lifecycle so it can be hosted by application.Application like
// any other component.
type Runner struct {
	group   group.Group
	log     protocol.Logger
	emitter group.InstrumentationEmitter

	eachMessage kafka.MessageHandler
	eachBatch   kafka.BatchHandler

	concurrency          int
	retryPolicy          RetryPolicy
	heartbeatInterval    time.Duration
	autoCommit           bool
	eachBatchAutoResolve bool
	onCrash              func(error)

	limiter *limiter

	running   atomic.Bool
	consuming atomic.Bool

	stop   chan struct{}
	done   chan struct{}
	stopMu sync.Mutex
}

// New builds a Runner from options. WithGroup and exactly one of
// WithEachMessage/WithEachBatch are required.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{}

	for _, opt := range defaults() {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("runner: applying default option: %w", err)
		}
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("runner: applying option: %w", err)
		}
	}

	if r.group == nil {
		return nil, fmt.Errorf("runner: %w", kafka.ErrNoGroupID)
	}
	if r.eachMessage == nil && r.eachBatch == nil {
		return nil, ErrNoHandler
	}

	r.limiter = newLimiter(r.concurrency)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	return r, nil
}

// IsRunning reports whether the Runner's fetch loop is active.
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// IsConsuming reports whether the Runner is currently inside a batch
// dispatch. Stop does not consult it: it waits for the fetch loop's done
// signal, which comes only after the in-flight cycle has finished.
func (r *Runner) IsConsuming() bool {
	return r.consuming.Load()
}
