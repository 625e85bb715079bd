package kafka

import (
	"context"
	"time"
)

// Message represents a single Kafka record read from a partition.
// Read-only; its lifetime is bounded by the Batch that produced it.
type Message struct {
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   []Header
	Timestamp time.Time
	Topic     string
	Partition int32
}

// Header represents a Kafka message header key-value pair.
type Header struct {
	Key   string
	Value []byte
}

// TopicPartition identifies one partition of one topic.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// OffsetsByTopicPartition is the wire shape for commit/uncommitted-offset
// snapshots: the next offset to read (last processed + 1) per partition.
type OffsetsByTopicPartition map[TopicPartition]int64

// Batch is one fetch cycle's worth of messages for a single topic-partition,
// produced by group.Fetch and consumed exactly once.
type Batch struct {
	Topic         string
	Partition     int32
	HighWatermark int64
	Messages      []Message
}

// IsEmpty reports whether the batch carries no messages.
func (b Batch) IsEmpty() bool { return len(b.Messages) == 0 }

// FirstOffset returns the offset of the first message, or -1 if empty.
func (b Batch) FirstOffset() int64 {
	if b.IsEmpty() {
		return -1
	}
	return b.Messages[0].Offset
}

// LastOffset returns the offset of the last message, or -1 if empty.
func (b Batch) LastOffset() int64 {
	if b.IsEmpty() {
		return -1
	}
	return b.Messages[len(b.Messages)-1].Offset
}

// OffsetLag is the distance between the partition's high watermark and the
// offset just past the last fetched message.
func (b Batch) OffsetLag() int64 {
	if b.IsEmpty() {
		return b.HighWatermark
	}
	lag := b.HighWatermark - (b.LastOffset() + 1)
	if lag < 0 {
		return 0
	}
	return lag
}

// TopicPartition identifies this batch's partition.
func (b Batch) TopicPartition() TopicPartition {
	return TopicPartition{Topic: b.Topic, Partition: b.Partition}
}

// BatchControl is the surface a batch handler uses to resolve offsets,
// throttle heartbeats, commit, and observe runner/seek state mid-batch.
// Immutable per invocation; captures the batch's (topic, partition) context.
type BatchControl interface {
	ResolveOffset(offset int64)
	Heartbeat(ctx context.Context)
	CommitOffsetsIfNecessary(ctx context.Context, offsets ...OffsetsByTopicPartition) error
	UncommittedOffsets() OffsetsByTopicPartition
	IsRunning() bool
	IsStale() bool
}

// MessageHandler processes one message at a time, called strictly in offset
// order within a partition. Returning an error aborts the batch after
// committing everything resolved so far.
type MessageHandler func(ctx context.Context, topic string, partition int32, msg Message) error

// BatchHandler processes a whole batch, advancing offsets and committing
// through the supplied BatchControl.
type BatchHandler func(ctx context.Context, batch Batch, control BatchControl) error

// Handler processes consumed messages for the legacy single-partition
// facade. Returns nil on success, or error if message should be retried.
type Handler func(ctx context.Context, msg Message) error

// StartOffset defines the initial offset for new consumer groups.
type StartOffset int

const (
	// StartOffsetLatest begins consuming from newest messages.
	StartOffsetLatest StartOffset = iota

	// StartOffsetEarliest begins consuming from oldest messages.
	StartOffsetEarliest
)
