package messaging

import (
	"context"
	"time"

	"shopcore/infrastructure/persistence/mysql"
	"shopcore/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaOutboxPublisher delivers outbox events to a single Kafka topic.
// The event type rides in a message header; the key is the aggregate
// id so per-aggregate ordering is preserved within a partition.
type KafkaOutboxPublisher struct {
	writer *kafka.Writer
}

func NewKafkaOutboxPublisher(writer *kafka.Writer) *KafkaOutboxPublisher {
	return &KafkaOutboxPublisher{writer: writer}
}

func (p *KafkaOutboxPublisher) Publish(ctx context.Context, eventType, key, payload string) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: []byte(payload),
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return err
	}

	logger.Debug("outbox event delivered to kafka",
		zap.String("event_type", eventType),
		zap.String("key", key),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaOutboxPublisher) Close() error {
	return p.writer.Close()
}

var _ mysql.OutboxPublisher = (*KafkaOutboxPublisher)(nil)
