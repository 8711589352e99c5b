// Package kafka wraps segmentio/kafka-go with the small surface the
// outbox relay needs: a broker list and topic writers.
package kafka

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// Client holds the broker list. An empty list means Kafka is disabled
// and callers should fall back to log-only publishing.
type Client struct {
	Brokers []string
}

// NewClient parses a comma-separated broker list.
func NewClient(brokersCSV string) *Client {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

// Enabled reports whether any broker is configured.
func (c *Client) Enabled() bool { return len(c.Brokers) > 0 }

// NewWriter creates a topic writer keyed by message hash, requiring a
// single broker ack.
func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}
