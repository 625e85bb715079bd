package group

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/protocol"
)

// FranzGroup adapts a *kgo.Client to the Group interface, grounded on the
// client wiring in kafka/consumer/consumer.go (seed brokers, consumer
// group, rebalance hooks, PollFetches, CommitRecords).
//
// kgo.Client manages the join/sync/heartbeat RPC sequence autonomously
// behind its rebalance callbacks, unlike the explicit join-then-sync pair
// spec.md §4.2 describes — see DESIGN.md's Open Question 3 for how Join,
// Sync, and Heartbeat are reconciled with that.
type FranzGroup struct {
	client  *kgo.Client
	groupID string
	log     protocol.Logger

	mu          sync.Mutex
	memberID    string
	leaderID    string
	isLeader    bool
	protocol    string
	assignment  map[string][]int32
	assignedGen chan struct{} // closed and replaced on every OnPartitionsAssigned

	resolved  map[kafka.TopicPartition]int64
	committed map[kafka.TopicPartition]int64
	seeked    map[kafka.TopicPartition]bool

	lastHeartbeat time.Time

	autoCommitInterval  time.Duration
	autoCommitThreshold int
	lastAutoCommit      time.Time
	sinceAutoCommit     int
}

// FranzConfig configures a FranzGroup. Loaded the same way the teacher's
// consumer.Config is, via config.ConfigEngine + YAML.
type FranzConfig struct {
	Brokers             []string      `yaml:"brokers"`
	Topics              []string      `yaml:"topics"`
	GroupID             string        `yaml:"group_id"`
	StartOffset         kafka.StartOffset
	FetchMinBytes       int32         `yaml:"fetch_min_bytes"`
	FetchMaxWait        time.Duration `yaml:"fetch_max_wait"`
	AutoCommitInterval  time.Duration `yaml:"auto_commit_interval" default:"5s"`
	AutoCommitThreshold int           `yaml:"auto_commit_threshold" default:"1000"`
}

// NewFranzGroup creates a Group backed by a real franz-go client.
func NewFranzGroup(cfg FranzConfig, log protocol.Logger) (*FranzGroup, error) {
	if len(cfg.Brokers) == 0 {
		return nil, kafka.ErrNoBrokers
	}
	if cfg.GroupID == "" {
		return nil, kafka.ErrNoGroupID
	}
	if log == nil {
		log = protocol.NopLogger{}
	}

	g := &FranzGroup{
		groupID:             cfg.GroupID,
		log:                 log,
		assignedGen:         make(chan struct{}),
		resolved:            make(map[kafka.TopicPartition]int64),
		committed:           make(map[kafka.TopicPartition]int64),
		seeked:              make(map[kafka.TopicPartition]bool),
		autoCommitInterval:  cfg.AutoCommitInterval,
		autoCommitThreshold: cfg.AutoCommitThreshold,
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.GroupID),
		kgo.ConsumeTopics(cfg.Topics...),
		kgo.OnPartitionsRevoked(func(ctx context.Context, cl *kgo.Client, rev map[string][]int32) {
			log.Info(ctx, "partitions revoked", "group_id", cfg.GroupID, "partitions", rev)
			if err := cl.CommitUncommittedOffsets(ctx); err != nil {
				log.Error(ctx, "commit on revoke failed", "err", err)
			}
		}),
		kgo.OnPartitionsAssigned(func(ctx context.Context, cl *kgo.Client, assigned map[string][]int32) {
			log.Info(ctx, "partitions assigned", "group_id", cfg.GroupID, "partitions", assigned)
			g.mu.Lock()
			g.assignment = assigned
			for tp := range g.seeked {
				delete(g.seeked, tp)
			}
			close(g.assignedGen)
			g.assignedGen = make(chan struct{})
			g.mu.Unlock()
		}),
		kgo.OnPartitionsLost(func(ctx context.Context, cl *kgo.Client, lost map[string][]int32) {
			log.Warn(ctx, "partitions lost", "group_id", cfg.GroupID, "partitions", lost)
			g.mu.Lock()
			for topic, partitions := range lost {
				for _, p := range partitions {
					g.seeked[kafka.TopicPartition{Topic: topic, Partition: p}] = true
				}
			}
			g.mu.Unlock()
		}),
	}

	switch cfg.StartOffset {
	case kafka.StartOffsetEarliest:
		opts = append(opts, kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()))
	case kafka.StartOffsetLatest:
		opts = append(opts, kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()))
	}
	if cfg.FetchMinBytes > 0 {
		opts = append(opts, kgo.FetchMinBytes(cfg.FetchMinBytes))
	}
	if cfg.FetchMaxWait > 0 {
		opts = append(opts, kgo.FetchMaxWait(cfg.FetchMaxWait))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	g.client = client

	return g, nil
}

// Join waits for the next partition assignment. kgo negotiates membership
// on its own schedule; Join's job is only to block the Runner's join/sync
// driver until that negotiation has produced an assignment (or the member
// already holds one).
func (g *FranzGroup) Join(ctx context.Context) error {
	g.mu.Lock()
	if len(g.assignment) > 0 {
		g.mu.Unlock()
		return nil
	}
	wait := g.assignedGen
	g.mu.Unlock()

	select {
	case <-wait:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sync is a no-op: kgo has no separate sync RPC to drive from here.
func (g *FranzGroup) Sync(ctx context.Context) error { return nil }

// Leave removes this member from the group.
func (g *FranzGroup) Leave(ctx context.Context) error {
	g.client.LeaveGroup()
	return nil
}

// Fetch polls for records and translates them into kafka.Batch values,
// classifying any fetch-level error into the spec.md §7 taxonomy.
func (g *FranzGroup) Fetch(ctx context.Context) ([]kafka.Batch, error) {
	fetches := g.client.PollFetches(ctx)

	if errs := fetches.Errors(); len(errs) > 0 {
		for _, fe := range errs {
			g.log.Error(ctx, "fetch error", "topic", fe.Topic, "partition", fe.Partition, "err", fe.Err)
		}
		return nil, classifyFetchError(errs[0].Err)
	}

	var batches []kafka.Batch
	fetches.EachPartition(func(p kgo.FetchTopicPartition) {
		if p.Err != nil {
			return
		}
		tp := kafka.TopicPartition{Topic: p.Topic, Partition: p.Partition}
		g.mu.Lock()
		stale := g.seeked[tp]
		g.mu.Unlock()
		if stale {
			return
		}

		batch := kafka.Batch{Topic: p.Topic, Partition: p.Partition}
		for _, r := range p.Records {
			headers := make([]kafka.Header, len(r.Headers))
			for i, h := range r.Headers {
				headers[i] = kafka.Header{Key: h.Key, Value: h.Value}
			}
			batch.Messages = append(batch.Messages, kafka.Message{
				Offset:    r.Offset,
				Key:       r.Key,
				Value:     r.Value,
				Headers:   headers,
				Timestamp: r.Timestamp,
				Topic:     r.Topic,
				Partition: r.Partition,
			})
			if r.Offset+1 > batch.HighWatermark {
				batch.HighWatermark = r.Offset + 1
			}
		}
		if !batch.IsEmpty() {
			batches = append(batches, batch)
		}
	})

	return batches, nil
}

// Heartbeat throttles to interval; kgo heartbeats on its own internal
// timer, so this only tracks the last-sent time for callers that rely on
// Heartbeat's throttling contract (e.g. tests against the Group interface).
func (g *FranzGroup) Heartbeat(ctx context.Context, interval time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if time.Since(g.lastHeartbeat) < interval {
		return nil
	}
	g.lastHeartbeat = time.Now()
	return nil
}

// CommitOffsets commits the given offsets, or everything resolved so far
// when none are given.
func (g *FranzGroup) CommitOffsets(ctx context.Context, offsets ...kafka.OffsetsByTopicPartition) error {
	g.mu.Lock()
	if len(offsets) == 0 {
		for tp, off := range g.resolved {
			g.committed[tp] = off
		}
	} else {
		for _, set := range offsets {
			for tp, off := range set {
				g.committed[tp] = off
			}
		}
	}
	g.lastAutoCommit = time.Now()
	g.sinceAutoCommit = 0
	g.mu.Unlock()

	return g.client.CommitUncommittedOffsets(ctx)
}

// CommitOffsetsIfNecessary commits once the auto-commit interval or
// threshold has been reached.
func (g *FranzGroup) CommitOffsetsIfNecessary(ctx context.Context) error {
	g.mu.Lock()
	due := g.autoCommitThreshold > 0 && g.sinceAutoCommit >= g.autoCommitThreshold
	due = due || (g.autoCommitInterval > 0 && time.Since(g.lastAutoCommit) >= g.autoCommitInterval)
	g.mu.Unlock()

	if !due {
		return nil
	}
	return g.CommitOffsets(ctx)
}

// UncommittedOffsets snapshots resolved-but-not-yet-committed offsets.
func (g *FranzGroup) UncommittedOffsets() kafka.OffsetsByTopicPartition {
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

// ResolveOffset marks offset+1 (the next offset to read) as ready to commit.
func (g *FranzGroup) ResolveOffset(tp kafka.TopicPartition, offset int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolved[tp] = offset + 1
	g.sinceAutoCommit++
}

// HasSeekOffset reports whether tp's partition was lost/reassigned since
// its batch was fetched.
func (g *FranzGroup) HasSeekOffset(tp kafka.TopicPartition) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seeked[tp]
}

func (g *FranzGroup) GroupID() string { return g.groupID }

func (g *FranzGroup) MemberID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.memberID
}

// SetMemberID clears or overwrites the cached member identity. kgo
// re-identifies on its own; this just resets what this adapter reports.
func (g *FranzGroup) SetMemberID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.memberID = id
}

func (g *FranzGroup) LeaderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leaderID
}

func (g *FranzGroup) MemberAssignment() map[string][]int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.assignment
}

func (g *FranzGroup) GroupProtocol() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.protocol
}

func (g *FranzGroup) IsLeader() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isLeader
}

// Close releases the underlying client. Not part of the Group interface;
// called directly by owners that constructed a FranzGroup.
func (g *FranzGroup) Close() { g.client.Close() }

// classifyFetchError maps a kgo fetch error onto the spec.md §7 taxonomy.
// kgo surfaces these as plain errors rather than named types, so matching
// is done against the well-known broker error strings it wraps.
func classifyFetchError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case containsAny(err.Error(), "REBALANCE_IN_PROGRESS", "rebalance in progress"):
		return fmt.Errorf("%w: %v", kafka.ErrRebalanceInProgress, err)
	case containsAny(err.Error(), "NOT_COORDINATOR", "not coordinator"):
		return fmt.Errorf("%w: %v", kafka.ErrNotCoordinatorForGroup, err)
	case containsAny(err.Error(), "UNKNOWN_MEMBER_ID", "unknown member"):
		return fmt.Errorf("%w: %v", kafka.ErrUnknownMemberID, err)
	case containsAny(err.Error(), "OFFSET_OUT_OF_RANGE", "offset out of range"):
		return fmt.Errorf("%w: %v", kafka.ErrOffsetOutOfRange, err)
	case containsAny(err.Error(), "NOT_IMPLEMENTED", "not implemented"):
		return fmt.Errorf("%w: %v", kafka.ErrNotImplemented, err)
	default:
		return err
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
