package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/adapters/memory"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
)

func TestCreateProperty_DefaultsAndFilters(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	plan, err := svc.CreateProperty(ctx, &domain.Property{Title: "Savanna", Price: decimal.RequireFromString("150000")})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryPlan, plan.Category)

	_, err = svc.CreateProperty(ctx, &domain.Property{Title: "Coastal Villa", Category: domain.CategoryBuilt, Images: []string{"a.jpg", "b.jpg"}})
	require.NoError(t, err)

	plans, err := svc.ListProperties(ctx, ports.ListFilter{Category: domain.CategoryPlan})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, "Savanna", plans[0].Title)

	all, err := svc.ListProperties(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, []string{"a.jpg", "b.jpg"}, all[1].Images)
}

func TestCreateProperty_Invalid(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.CreateProperty(context.Background(), &domain.Property{Title: ""})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = svc.ListProperties(context.Background(), ports.ListFilter{Category: "VILLA"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProperty_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.GetProperty(context.Background(), 5)
	require.ErrorIs(t, err, ErrNotFound)
}
