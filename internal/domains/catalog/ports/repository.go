package ports

import (
	"context"
	"errors"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("property not found")

// ListFilter narrows property listings. A zero value lists everything.
type ListFilter struct {
	Category domain.Category
}

// Repository persists catalog properties.
type Repository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Property, error)
}
