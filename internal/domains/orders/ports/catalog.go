package ports

import (
	"context"
	"errors"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// ErrPlanNotFound is returned when no purchasable property has the requested id.
var ErrPlanNotFound = errors.New("plan not found")

// Catalog is the read-only view of the property catalog used by checkout.
type Catalog interface {
	GetPlan(ctx context.Context, id int64) (*domain.Plan, error)
}
