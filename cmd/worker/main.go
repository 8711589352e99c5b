// The worker process relays outbox events to Kafka. It runs separately
// from the API server so event delivery survives API restarts and can
// be scaled independently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shopcore/config"
	"shopcore/infrastructure/messaging"
	"shopcore/infrastructure/persistence/mysql"
	"shopcore/pkg/kafka"
	"shopcore/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := mysql.FromAppConfig(cfg).Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	// Without brokers the worker still drains the outbox, logging each
	// event instead of publishing it.
	var publisher mysql.OutboxPublisher = &mysql.LoggingOutboxPublisher{}
	client := kafka.NewClient(cfg.Kafka.Brokers)
	if client.Enabled() {
		kafkaPublisher := messaging.NewKafkaOutboxPublisher(client.NewWriter(cfg.Kafka.Topic))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		logger.Info("publishing outbox events to kafka",
			zap.Strings("brokers", client.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	} else {
		logger.Info("no kafka brokers configured, logging outbox events")
	}

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		publisher,
		cfg.Outbox.PollInterval,
		cfg.Outbox.BatchSize,
		cfg.Outbox.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("outbox worker started",
		zap.Duration("poll_interval", cfg.Outbox.PollInterval),
		zap.Int("batch_size", cfg.Outbox.BatchSize),
		zap.Int("max_retries", cfg.Outbox.MaxRetries),
	)

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}

	logger.Info("outbox worker stopped")
	return logger.Sync()
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
