package ports

import (
	"context"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// EventPublisher emits order lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopEventPublisher is a safe default when no broker is configured.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(_ context.Context, _ domain.Event) error { return nil }
