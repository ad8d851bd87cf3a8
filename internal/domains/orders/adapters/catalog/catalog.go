package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogdomain "github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	catalogports "github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog exposes catalog properties to checkout as plans.
type Catalog struct {
	properties catalogports.Repository
}

func New(properties catalogports.Repository) *Catalog {
	return &Catalog{properties: properties}
}

func (c *Catalog) GetPlan(ctx context.Context, id int64) (*domain.Plan, error) {
	property, err := c.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ports.ErrPlanNotFound, id)
		}
		return nil, err
	}
	return toPlan(property), nil
}

func toPlan(p *catalogdomain.Property) *domain.Plan {
	return &domain.Plan{
		ID:            p.ID,
		Title:         p.Title,
		Category:      string(p.Category),
		CategoryLabel: p.Category.Label(),
		Price:         p.Price,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Garage:        p.Garage,
		FloorArea:     p.FloorArea,
		Levels:        p.Levels,
		Width:         p.Width,
		Depth:         p.Depth,
		Styles:        append([]string(nil), p.Styles...),
		Images:        append([]string(nil), p.Images...),
	}
}
