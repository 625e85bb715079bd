package kafka

import "errors"

var (
	// ErrClosed indicates an operation on a closed client.
	ErrClosed = errors.New("kafka client is closed")

	// ErrNoBrokers indicates missing broker configuration.
	ErrNoBrokers = errors.New("no brokers provided")

	// ErrNoTopic indicates missing topic configuration.
	ErrNoTopic = errors.New("no topic provided")

	// ErrNoGroupID indicates missing consumer group ID.
	ErrNoGroupID = errors.New("no group ID provided")
)

// Error taxonomy recognized from the ConsumerGroup collaborator (spec.md §6-7).
var (
	// ErrRebalanceInProgress means the group is mid-rebalance; recovered by
	// re-joining, never surfaced to the crash handler.
	ErrRebalanceInProgress = errors.New("kafka: rebalance in progress")

	// ErrNotCoordinatorForGroup means the cached coordinator is stale;
	// recovered the same way as ErrRebalanceInProgress.
	ErrNotCoordinatorForGroup = errors.New("kafka: not coordinator for group")

	// ErrUnknownMemberID means the broker no longer recognizes this member;
	// recovered by clearing the member ID and re-joining.
	ErrUnknownMemberID = errors.New("kafka: unknown member id")

	// ErrOffsetOutOfRange means the collaborator already repositioned the
	// partition cursor; swallowed so the next fetch cycle proceeds.
	ErrOffsetOutOfRange = errors.New("kafka: offset out of range")

	// ErrNotImplemented is fatal: it bails retrying and crashes the runner.
	ErrNotImplemented = errors.New("kafka: not implemented")
)

// IsRebalanceSignal reports whether err is one of the membership errors
// recovered locally by re-joining the group.
func IsRebalanceSignal(err error) bool {
	return errors.Is(err, ErrRebalanceInProgress) || errors.Is(err, ErrNotCoordinatorForGroup)
}

// IsUnknownMember reports whether err indicates the broker has forgotten
// this member's identity.
func IsUnknownMember(err error) bool {
	return errors.Is(err, ErrUnknownMemberID)
}

// IsRepositioning reports whether err is a cursor-repositioning signal that
// should be swallowed rather than retried or surfaced.
func IsRepositioning(err error) bool {
	return errors.Is(err, ErrOffsetOutOfRange)
}

// IsFatal reports whether err must bail retrying and reach the crash handler
// directly, without going through the exhaustible retry budget.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
