// Package consumer is a single-handler facade over kafka/runner and
// kafka/group: the same public surface kafka/consumer has always had
// (WithBrokers/WithTopic/WithGroupID/WithHandler/...), now implemented by
// building a group.FranzGroup and a runner.Runner underneath instead of
// running its own PollFetches loop. The join/sync/rebalance/offset-commit
// logic that used to live here now lives once, in kafka/runner.
package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/kafka/runner"
	"github.com/rcoedo/kafkajs/protocol"
)

// Consumer consumes messages from a single topic with consumer-group
// support, delegating its lifecycle to a kafka/runner.Runner.
// Safe for concurrent use. Implements protocol.Lifecycle.
type Consumer struct {
	handler kafka.Handler
	log     protocol.Logger

	brokers       []string
	topic         string
	groupID       string
	startOffset   kafka.StartOffset
	fetchMinBytes int32
	fetchMaxWait  time.Duration

	franz *group.FranzGroup
	run   *runner.Runner
}

// New creates a new Kafka consumer with the provided options.
func New(options ...Option) (*Consumer, error) {
	consumer := &Consumer{}

	for _, option := range append(defaults(), options...) {
		if err := option(consumer); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	if consumer.log == nil {
		return nil, fmt.Errorf("empty logger")
	}
	if len(consumer.brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if consumer.topic == "" {
		return nil, ErrNoTopic
	}
	if consumer.groupID == "" {
		return nil, ErrNoGroupID
	}
	if consumer.handler == nil {
		return nil, fmt.Errorf("empty handler")
	}

	franz, err := group.NewFranzGroup(group.FranzConfig{
		Brokers:       consumer.brokers,
		Topics:        []string{consumer.topic},
		GroupID:       consumer.groupID,
		StartOffset:   consumer.startOffset,
		FetchMinBytes: consumer.fetchMinBytes,
		FetchMaxWait:  consumer.fetchMaxWait,
	}, consumer.log)
	if err != nil {
		return nil, fmt.Errorf("create kafka group: %w", err)
	}
	consumer.franz = franz

	r, err := runner.New(
		runner.WithGroup(franz),
		runner.WithLogger(consumer.log),
		runner.WithEmitter(group.LoggingEmitter{Log: consumer.log}),
		runner.WithEachMessage(consumer.dispatch),
	)
	if err != nil {
		franz.Close()
		return nil, fmt.Errorf("create runner: %w", err)
	}
	consumer.run = r

	return consumer, nil
}

// Start begins consuming messages in the background. Implements protocol.Lifecycle.
func (c *Consumer) Start(ctx context.Context) error {
	if c.run.IsRunning() {
		return fmt.Errorf("consumer already started")
	}
	return c.run.Start(ctx)
}

// Stop gracefully stops the consumer and waits for shutdown. Implements protocol.Lifecycle.
// Idempotent and safe to call multiple times.
func (c *Consumer) Stop(ctx context.Context) error {
	if err := c.run.Stop(ctx); err != nil {
		return err
	}
	c.franz.Close()
	return nil
}

// dispatch adapts the legacy single-message kafka.Handler signature to
// kafka.MessageHandler, the shape kafka/runner drives.
func (c *Consumer) dispatch(ctx context.Context, topic string, partition int32, msg kafka.Message) error {
	return c.handler(ctx, msg)
}
