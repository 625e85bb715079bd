package runner

import (
	"context"
	"time"

	"github.com/rcoedo/kafkajs/kafka/group"
)

// emitFetch reports one FETCH instrumentation event (spec.md §4.3).
func (r *Runner) emitFetch(ctx context.Context, numBatches int, elapsed time.Duration) {
	r.emitter.Emit(ctx, group.Event{
		Name: group.EventFetch,
		Payload: group.FetchPayload{
			NumberOfBatches: numBatches,
			Duration:        elapsed,
		},
	})
}
