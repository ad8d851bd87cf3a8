package ports

import (
	"context"
	"time"

	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// Service exposes the checkout use cases to adapters (inbound/driving port).
type Service interface {
	CreateCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error)
	CreatePendingOrder(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.PendingOrder, error)
	OpenCheckoutSession(ctx context.Context, input ordertypes.OpenSessionInput) (*ordertypes.CheckoutResult, error)
	ConfirmPaid(ctx context.Context, orderID int64) (*domain.Order, error)
	ConfirmCancelled(ctx context.Context, orderID int64) (*domain.Order, error)
	GenerateReceipt(ctx context.Context, orderID int64) (*ordertypes.Receipt, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ExpireStalePending(ctx context.Context, createdBefore time.Time) (int, error)
}
