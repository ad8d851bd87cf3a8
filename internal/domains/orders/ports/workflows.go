package ports

import (
	"context"

	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
)

// WorkflowOrchestrator runs the checkout flow, durably when a workflow engine is available.
type WorkflowOrchestrator interface {
	StartCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error)
}
