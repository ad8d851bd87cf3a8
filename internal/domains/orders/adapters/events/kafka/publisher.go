package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes order events keyed by order id so one order's events stay ordered.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

func NewPublisher(writer *kafka.Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

type envelope struct {
	Type    string       `json:"type"`
	Payload domain.Event `json:"payload"`
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	value, err := json.Marshal(envelope{Type: event.EventName(), Payload: event})
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	msg := kafka.Message{
		Key:     []byte(strconv.FormatInt(event.AggregateID(), 10)),
		Value:   value,
		Time:    event.OccurredAt(),
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(event.EventName())}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		if p.logger != nil {
			p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order event",
				slog.String("event", event.EventName()),
				slog.Int64("order.id", event.AggregateID()),
				slog.String("error", err.Error()))
		}
		return fmt.Errorf("publish %s: %w", event.EventName(), err)
	}
	return nil
}
