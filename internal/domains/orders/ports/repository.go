package ports

import (
	"context"
	"errors"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// ErrNotFound is returned by Repository lookups for an unknown order id.
var ErrNotFound = errors.New("order not found")

// Repository persists orders and their status transitions.
type Repository interface {
	// Save inserts the order when ID is zero and updates mutable fields otherwise.
	// PlanID and Amount are never rewritten after creation.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// AssignReceipt stores number only when the order has none yet and marks the receipt generated.
	// The returned order carries the number that is actually stored.
	AssignReceipt(ctx context.Context, id int64, number string) (*domain.Order, error)
}
