// Package group defines the ConsumerGroup collaborator the Runner consumes,
// and the instrumentation events it emits. The wire protocol, broker
// connection pool, and SASL/TLS negotiation behind an implementation of
// Group are out of scope here — Group is a contract, not a codec.
package group

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
)

// Group is the ConsumerGroup collaborator named in spec.md §6. It
// encapsulates the join/sync/heartbeat/fetch/commit RPC sequencing; the
// Runner drives it without knowing how any of that is wired to brokers.
//
// Commits and heartbeats may be called concurrently from multiple partition
// tasks within one fetch cycle — implementations must serialize them
// internally.
type Group interface {
	// Join performs the initial group-membership handshake (or
	// re-identification after the member ID was cleared).
	Join(ctx context.Context) error

	// Sync completes the join handshake once the leader has computed
	// assignments (a no-op for implementations where the underlying client
	// manages join+sync as one indivisible step).
	Sync(ctx context.Context) error

	// Leave removes this member from the group. Called by Stop; its error
	// is the caller's to swallow or surface.
	Leave(ctx context.Context) error

	// Fetch performs one round of fetching and returns the batches ready
	// for processing, possibly spanning several topic-partitions.
	Fetch(ctx context.Context) ([]kafka.Batch, error)

	// Heartbeat sends a heartbeat, throttled internally so that calling it
	// more often than interval is a no-op.
	Heartbeat(ctx context.Context, interval time.Duration) error

	// CommitOffsets commits the given offsets, or all resolved-but-
	// uncommitted offsets when no offsets are given.
	CommitOffsets(ctx context.Context, offsets ...kafka.OffsetsByTopicPartition) error

	// CommitOffsetsIfNecessary commits resolved offsets only once the
	// configured auto-commit interval/threshold has been reached.
	CommitOffsetsIfNecessary(ctx context.Context) error

	// UncommittedOffsets snapshots resolved-but-not-yet-committed offsets.
	UncommittedOffsets() kafka.OffsetsByTopicPartition

	// ResolveOffset marks an offset as eligible for commit.
	ResolveOffset(tp kafka.TopicPartition, offset int64)

	// HasSeekOffset reports whether an external seek has invalidated
	// in-flight processing for tp since its batch was fetched.
	HasSeekOffset(tp kafka.TopicPartition) bool

	// GroupID is the consumer group this member belongs to.
	GroupID() string

	// MemberID is this member's broker-assigned identity. Mutable:
	// clearing it (SetMemberID("")) forces re-identification on the next
	// Join.
	MemberID() string

	// SetMemberID overwrites the member ID, used by the scheduler to clear
	// it after an UNKNOWN_MEMBER_ID error.
	SetMemberID(id string)

	// LeaderID is the group leader's member ID.
	LeaderID() string

	// MemberAssignment is this member's assigned partitions by topic.
	MemberAssignment() map[string][]int32

	// GroupProtocol is the negotiated partition-assignment protocol name.
	GroupProtocol() string

	// IsLeader reports whether this member is the group leader.
	IsLeader() bool
}
