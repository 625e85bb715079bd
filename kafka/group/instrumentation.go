package group

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/protocol"
)

// Event names emitted by the Runner, matching spec.md §4's payload tables.
const (
	EventGroupJoin       = "GROUP_JOIN"
	EventFetch           = "FETCH"
	EventStartBatchProc  = "START_BATCH_PROCESS"
	EventEndBatchProcess = "END_BATCH_PROCESS"
)

// Event is one instrumentation occurrence: a name plus its structured
// payload, as described per-event in spec.md §4.
type Event struct {
	Name    string
	Payload any
}

// GroupJoinPayload is emitted once per successful join/sync cycle.
type GroupJoinPayload struct {
	GroupID          string
	MemberID         string
	LeaderID         string
	IsLeader         bool
	MemberAssignment map[string][]int32
	GroupProtocol    string
	Duration         time.Duration
}

// FetchPayload is emitted once per fetch cycle, before batches are dispatched.
type FetchPayload struct {
	NumberOfBatches int
	Duration        time.Duration
}

// BatchProcessPayload is emitted at the start and end of one batch's
// processing.
type BatchProcessPayload struct {
	Topic       string
	Partition   int32
	FirstOffset int64
	LastOffset  int64
	OffsetLag   int64
	BatchSize   int
	Duration    time.Duration // zero on START_BATCH_PROCESS
}

// InstrumentationEmitter is the external collaborator named in spec.md §6
// that receives Runner events.
type InstrumentationEmitter interface {
	Emit(ctx context.Context, event Event)
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) {}

// LoggingEmitter renders events through a protocol.Logger at info level.
// The Runner's default emitter is NopEmitter; LoggingEmitter is opt-in.
type LoggingEmitter struct {
	Log protocol.Logger
}

func (e LoggingEmitter) Emit(ctx context.Context, event Event) {
	if e.Log == nil {
		return
	}
	e.Log.Info(ctx, "runner event", "event", event.Name, "payload", event.Payload)
}
