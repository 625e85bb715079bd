package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rcoedo/kafkajs/application"
	"github.com/rcoedo/kafkajs/config"
	"github.com/rcoedo/kafkajs/config/source/file"
	"github.com/rcoedo/kafkajs/kafka"
	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/kafka/instrumentation/pgsink"
	"github.com/rcoedo/kafkajs/kafka/producer"
	"github.com/rcoedo/kafkajs/kafka/runner"
	"github.com/rcoedo/kafkajs/logger"
	"github.com/rcoedo/kafkajs/pgrepo"
)

func main() {
	log, err := logger.New(
		logger.WithLevel(logger.LevelDebug),
		logger.WithDevelopmentConfig(),
	)
	die(err)

	ctx := context.Background()

	start := time.Now()
	log.Debug(ctx, "start")
	defer func() { log.Debug(ctx, "stop", "in", time.Since(start)) }()

	var cfg struct {
		DB               pgrepo.Config     `yaml:"db"`
		MessagesConsumer group.FranzConfig `yaml:"messages_consumer"`
		MessagesProducer producer.Config   `yaml:"messages_producer"`
		Events           pgsink.Config     `yaml:"events"`
		Concurrency      int               `yaml:"partitions_consumed_concurrently" default:"1"`
	}
	die(config.New().With(file.YAML("config.yaml")).Scan(&cfg))

	var (
		db         *pgrepo.DB
		emitter    = group.InstrumentationEmitter(group.LoggingEmitter{Log: log.New("runner")})
		components []application.Component
	)
	if cfg.DB.Host != "" {
		db, err = pgrepo.New(pgrepo.WithLogger(log.New("pgrepo")), pgrepo.WithConfig(cfg.DB))
		die(err)

		sink, err := pgsink.New(db, cfg.Events, log.New("pgsink"))
		die(err)
		emitter = sink

		components = append(components, application.NewLifecycleComponent("db", db))
	}

	messagesProducer, err := producer.New(
		producer.WithLogger(log.New("producer")),
		producer.WithConfig(cfg.MessagesProducer),
	)
	die(err)

	franzGroup, err := group.NewFranzGroup(cfg.MessagesConsumer, log.New("kafka_group"))
	die(err)

	consumerRunner, err := runner.New(
		runner.WithGroup(franzGroup),
		runner.WithLogger(log.New("runner")),
		runner.WithEmitter(emitter),
		runner.WithConcurrency(cfg.Concurrency),
		runner.WithOnCrash(func(err error) {
			log.Error(ctx, "consumer runner crashed", "error", err)
		}),
		runner.WithEachMessage(func(ctx context.Context, topic string, partition int32, msg kafka.Message) error {
			log.Info(ctx, "incoming message",
				"topic", topic,
				"partition", partition,
				"key", string(msg.Key),
				"value", string(msg.Value),
			)
			return messagesProducer.ProduceSync(ctx, msg)
		}),
	)
	die(err)

	components = append(components,
		application.NewLifecycleComponent("consumer", consumerRunner),
		application.NewLifecycleComponent("producer", messagesProducer),
	)

	app, err := application.New(
		application.WithLogger(log.New("application")),
		application.WithName("main"),
		application.WithComponents(components...),
	)
	die(err)

	go func() {
		time.Sleep(time.Second)
		log.Debug(ctx, "sending sample message")
		msg := kafka.Message{
			Key:   []byte("sample key"),
			Value: []byte("sample value"),
		}
		die(messagesProducer.ProduceSync(ctx, msg))
	}()

	die(app.Run(ctx))
}

func die(args ...any) {
	if len(args) == 0 {
		return
	}
	if err, ok := args[len(args)-1].(error); ok && err != nil {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("%s:%d: %s", file, line, err.Error())
		os.Exit(1)
	}
}
