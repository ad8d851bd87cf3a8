package ports

import (
	"context"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListProperties(ctx context.Context, filter ListFilter) ([]*domain.Property, error)
}
