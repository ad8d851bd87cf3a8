package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	checkoutactivities "github.com/cedrichouse/houseplans-api/internal/durable/temporal/activities/checkout"
)

// RunCheckoutSequence creates the pending order and then opens its gateway session.
// Each step runs exactly once; a gateway failure leaves the order PENDING.
func RunCheckoutSequence(ctx workflow.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "planId", input.PlanID)
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var pending ordertypes.PendingOrder
	if err := workflow.ExecuteActivity(ctx, checkoutactivities.CreatePendingOrderActivityName, input).Get(ctx, &pending); err != nil {
		logger.Error("checkout sequence failed to create order", "planId", input.PlanID, "error", err)
		return nil, err
	}

	var result ordertypes.CheckoutResult
	sessionInput := ordertypes.OpenSessionInput{OrderID: pending.OrderID, OriginHint: input.OriginHint}
	if err := workflow.ExecuteActivity(ctx, checkoutactivities.OpenCheckoutSessionActivityName, sessionInput).Get(ctx, &result); err != nil {
		logger.Error("checkout sequence failed to open session", "orderId", pending.OrderID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence completed", "orderId", result.OrderID)
	return &result, nil
}
