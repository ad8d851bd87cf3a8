package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestContactMessage_Validate(t *testing.T) {
	msg := ContactMessage{Name: " Thandi ", Email: "thandi@example.com", Subject: "Plans", Message: "Hello"}
	require.NoError(t, msg.Validate())
	require.Equal(t, "Thandi", msg.Name)

	msg.Email = "not-an-email"
	require.ErrorIs(t, msg.Validate(), ErrInvalidEmail)

	msg = ContactMessage{Name: "x", Email: "x@example.com", Subject: "s", Message: "  "}
	require.ErrorIs(t, msg.Validate(), ErrMessageRequired)
}

func TestQuoteRequest_Validate(t *testing.T) {
	q := QuoteRequest{
		FullName:       "Sipho Dlamini",
		Email:          "sipho@example.com",
		Phone:          "+27 72 000 0000",
		City:           "Durban",
		PreferredStyle: "Modern",
		Bedrooms:       3,
		Bathrooms:      2,
		YardLength:     decimal.RequireFromString("30"),
		YardBreadth:    decimal.RequireFromString("20.5"),
		Budget:         "R1.5m",
		Description:    "Single storey",
	}
	require.NoError(t, q.Validate())

	q.YardBreadth = decimal.Zero
	require.ErrorIs(t, q.Validate(), ErrInvalidYardSize)

	q.YardBreadth = decimal.NewFromInt(10)
	q.Bathrooms = -1
	require.ErrorIs(t, q.Validate(), ErrNegativeRooms)
}
