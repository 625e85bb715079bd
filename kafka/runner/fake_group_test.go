package runner_test

import (
	"context"
	"sync"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
)

// fakeGroup is a hand-written, in-memory implementation of group.Group used
// to exercise the Runner without a broker.
type fakeGroup struct {
	mu sync.Mutex

	groupID  string
	memberID string
	leaderID string
	isLeader bool
	protocol string

	assignment map[string][]int32
	batches    [][]kafka.Batch // fed to Fetch in order, one slice per call
	fetchCalls int

	resolved  map[kafka.TopicPartition]int64
	committed map[kafka.TopicPartition]int64
	seeked    map[kafka.TopicPartition]bool

	joinErr     error
	fetchErrs   []error // parallel to batches; returned instead of batches[i]
	commitCalls int
	heartbeats  int
	left        bool
}

func newFakeGroup(batches ...[]kafka.Batch) *fakeGroup {
	return &fakeGroup{
		groupID:    "test-group",
		memberID:   "member-1",
		leaderID:   "member-1",
		isLeader:   true,
		protocol:   "range",
		assignment: map[string][]int32{"test-topic": {0}},
		batches:    batches,
		resolved:   make(map[kafka.TopicPartition]int64),
		committed:  make(map[kafka.TopicPartition]int64),
		seeked:     make(map[kafka.TopicPartition]bool),
	}
}

func (g *fakeGroup) Join(ctx context.Context) error { return g.joinErr }
func (g *fakeGroup) Sync(ctx context.Context) error { return nil }
func (g *fakeGroup) Leave(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.left = true
	return nil
}

func (g *fakeGroup) Fetch(ctx context.Context) ([]kafka.Batch, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.fetchCalls
	g.fetchCalls++

	if i < len(g.fetchErrs) && g.fetchErrs[i] != nil {
		return nil, g.fetchErrs[i]
	}
	if i < len(g.batches) {
		return g.batches[i], nil
	}

	// A real broker's fetch blocks for FetchMaxWait when there's nothing
	// new; mimic that so the scheduler's loop doesn't spin once the fake's
	// fixture batches are exhausted.
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Millisecond):
	}
	return nil, nil
}

func (g *fakeGroup) Heartbeat(ctx context.Context, interval time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.heartbeats++
	return nil
}

func (g *fakeGroup) CommitOffsets(ctx context.Context, offsets ...kafka.OffsetsByTopicPartition) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.commitCalls++
	if len(offsets) == 0 {
		for tp, off := range g.resolved {
			g.committed[tp] = off
		}
		return nil
	}
	for _, set := range offsets {
		for tp, off := range set {
			g.committed[tp] = off
		}
	}
	return nil
}

func (g *fakeGroup) CommitOffsetsIfNecessary(ctx context.Context) error {
	return g.CommitOffsets(ctx)
}

func (g *fakeGroup) UncommittedOffsets() kafka.OffsetsByTopicPartition {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(kafka.OffsetsByTopicPartition)
	for tp, off := range g.resolved {
		if committed, ok := g.committed[tp]; !ok || committed < off {
			out[tp] = off
		}
	}
	return out
}

func (g *fakeGroup) ResolveOffset(tp kafka.TopicPartition, offset int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolved[tp] = offset + 1
}

func (g *fakeGroup) HasSeekOffset(tp kafka.TopicPartition) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seeked[tp]
}

func (g *fakeGroup) GroupID() string { return g.groupID }
func (g *fakeGroup) MemberID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.memberID
}
func (g *fakeGroup) SetMemberID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.memberID = id
}
func (g *fakeGroup) LeaderID() string { return g.leaderID }
func (g *fakeGroup) MemberAssignment() map[string][]int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.assignment
}
func (g *fakeGroup) GroupProtocol() string { return g.protocol }
func (g *fakeGroup) IsLeader() bool        { return g.isLeader }

func (g *fakeGroup) committedOffset(tp kafka.TopicPartition) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	off, ok := g.committed[tp]
	return off, ok
}

func (g *fakeGroup) wasLeft() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.left
}
