// Package group defines the ConsumerGroup collaborator contract (Group)
// consumed by kafka/runner, the InstrumentationEmitter events the Runner
// reports, and a franz-go-backed implementation of both.
package group
