package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/adapters/memory"
	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
)

func TestSubmitContactMessage(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	saved, err := svc.SubmitContactMessage(ctx, &domain.ContactMessage{Name: "Thandi", Email: "t@example.com", Subject: "Hi", Message: "Question"})
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := svc.GetContactMessage(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Question", got.Message)

	_, err = svc.SubmitContactMessage(ctx, &domain.ContactMessage{Name: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSubmitQuoteRequest(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	saved, err := svc.SubmitQuoteRequest(ctx, &domain.QuoteRequest{
		FullName:       "Sipho",
		Email:          "s@example.com",
		Phone:          "072",
		City:           "Durban",
		PreferredStyle: "Modern",
		Bedrooms:       3,
		Bathrooms:      2,
		YardLength:     decimal.NewFromInt(30),
		YardBreadth:    decimal.NewFromInt(20),
		Budget:         "R1m",
		Description:    "Family home",
	})
	require.NoError(t, err)

	_, err = svc.GetQuoteRequest(ctx, saved.ID+1)
	require.ErrorIs(t, err, ErrNotFound)

	list, err := svc.ListQuoteRequests(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
