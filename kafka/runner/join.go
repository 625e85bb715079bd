package runner

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
)

// joinAndSync drives the group's Join/Sync handshake under the Runner's
// retry policy, retrying on rebalance-in-progress and coordinator-change
// signals but bailing immediately on anything else (spec.md §4.2). On
// success it emits GROUP_JOIN with the resulting membership snapshot.
func (r *Runner) joinAndSync(ctx context.Context) error {
	start := time.Now()

	err := runRetriable(ctx, r.retryPolicy, func(ctx context.Context, rc *RetryContext) error {
		if err := r.group.Join(ctx); err != nil {
			if kafka.IsUnknownMember(err) {
				r.group.SetMemberID("")
			}
			if !kafka.IsRebalanceSignal(err) {
				return rc.Bail(err)
			}
			return err
		}

		if err := r.group.Sync(ctx); err != nil {
			if !kafka.IsRebalanceSignal(err) {
				return rc.Bail(err)
			}
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.running.Store(true)

	r.emitter.Emit(ctx, group.Event{
		Name: group.EventGroupJoin,
		Payload: group.GroupJoinPayload{
			GroupID:          r.group.GroupID(),
			MemberID:         r.group.MemberID(),
			LeaderID:         r.group.LeaderID(),
			IsLeader:         r.group.IsLeader(),
			MemberAssignment: r.group.MemberAssignment(),
			GroupProtocol:    r.group.GroupProtocol(),
			Duration:         time.Since(start),
		},
	})

	return nil
}
