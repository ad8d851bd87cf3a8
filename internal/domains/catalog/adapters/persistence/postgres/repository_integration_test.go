//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
	"github.com/cedrichouse/houseplans-api/internal/platform/postgres/pgtest"
)

func TestRepository_CreateListByCategory(t *testing.T) {
	db := pgtest.Start(t)

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Property{
		Title:    "Savanna",
		Category: domain.CategoryPlan,
		Price:    decimal.RequireFromString("150000.00"),
		Width:    decimal.RequireFromString("18.50"),
		Styles:   []string{"Modern", "Farmhouse"},
		Floors:   []map[string]any{{"name": "Ground"}},
		Images:   []string{"property_images/b.jpg", "property_images/a.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"property_images/b.jpg", "property_images/a.jpg"}, created.Images)
	assert.Equal(t, "150000.00", created.Price.StringFixed(2))
	assert.Equal(t, "Ground", created.Floors[0]["name"])

	_, err = repo.Create(ctx, &domain.Property{Title: "Built", Category: domain.CategoryBuilt})
	require.NoError(t, err)

	plans, err := repo.List(ctx, ports.ListFilter{Category: domain.CategoryPlan})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"Modern", "Farmhouse"}, plans[0].Styles)

	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
