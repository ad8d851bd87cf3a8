package ports

import (
	"context"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// ReceiptDocument is everything the renderer needs for one receipt.
type ReceiptDocument struct {
	Number string
	Order  domain.Order
	Plan   domain.Plan
}

// ReceiptRenderer renders a receipt document. It must not persist anything.
type ReceiptRenderer interface {
	Render(ctx context.Context, doc ReceiptDocument) ([]byte, error)
}
