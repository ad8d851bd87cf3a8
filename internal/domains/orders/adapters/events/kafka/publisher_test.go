package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (c *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return c.err
}

func TestPublish_KeysByOrder(t *testing.T) {
	w := &captureWriter{}
	p := &Publisher{writer: w}
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), domain.OrderStatusChanged{
		BaseEvent: domain.BaseEvent{OrderID: 12, Timestamp: at},
		From:      domain.StatusPending,
		To:        domain.StatusPaid,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "12", string(w.msgs[0].Key))
	require.Equal(t, "orders.order.paid", string(w.msgs[0].Headers[0].Value))

	var decoded struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	require.Equal(t, "orders.order.paid", decoded.Type)
	require.Equal(t, "PAID", decoded.Payload["to"])
	require.EqualValues(t, 12, decoded.Payload["order_id"])
}

func TestPublish_WrapsWriterError(t *testing.T) {
	p := &Publisher{writer: &captureWriter{err: errors.New("no brokers")}}
	err := p.Publish(context.Background(), domain.ReceiptIssued{BaseEvent: domain.BaseEvent{OrderID: 1}, ReceiptNumber: "RCP-20261015-00001"})
	require.ErrorContains(t, err, "orders.receipt.issued")
}
