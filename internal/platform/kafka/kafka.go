package kafka

import (
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// NewWriter builds a synchronous, key-hashed writer for topic. It returns nil when no broker is configured.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *kafka.Writer {
	brokers = compact(brokers)
	topic = strings.TrimSpace(topic)
	if len(brokers) == 0 || topic == "" {
		if logger != nil {
			logger.Warn("KAFKA_BROKERS not set, order events are not published")
		}
		return nil
	}
	if logger != nil {
		logger.Info("kafka writer configured", slog.String("topic", topic), slog.Int("brokers", len(brokers)))
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
