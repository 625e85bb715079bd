// Package kafka provides the shared domain types, error taxonomy, and
// handler contracts used by the consumer group runner, its ConsumerGroup
// collaborator, and the producer/consumer facades.
//
// kafka/runner drives a single consumer group member's lifecycle (join,
// fetch, dispatch, commit, heartbeat, rebalance recovery); kafka/group
// defines the ConsumerGroup collaborator it consumes; kafka/consumer and
// kafka/producer are convenience facades built on top.
//
// Producer example:
//
//	producer, err := producer.New(producer.WithConfig(cfg.Producer))
//	msg := kafka.Message{Key: []byte("key"), Value: []byte("value")}
//	producer.Produce(ctx, msg, nil)
//
// Consumer example:
//
//	consumer, err := consumer.New(
//	    consumer.WithHandler(func(ctx context.Context, msg kafka.Message) error {
//	        return nil // commits offset
//	    }),
//	)
package kafka
