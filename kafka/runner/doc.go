// Package runner implements the Consumer Runner: join/sync (join.go),
// the fetch loop scheduler and its error taxonomy (scheduler.go), the
// batch dispatcher (batch.go, fetch.go), bounded per-partition
// concurrency (limiter.go), retry/backoff (retry.go), and the
// protocol.Lifecycle surface (lifecycle.go). runner.go and options.go
// hold the Runner type and its functional-options constructor.
package runner
