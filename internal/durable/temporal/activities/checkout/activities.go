package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

const (
	// CreatePendingOrderActivityName persists the PENDING order for a plan.
	CreatePendingOrderActivityName = "orders.activities.CreatePendingOrder"
	// OpenCheckoutSessionActivityName calls the payment gateway for an existing order.
	OpenCheckoutSessionActivityName = "orders.activities.OpenCheckoutSession"
)

// Application error types carried across the workflow boundary.
const (
	ErrorTypeNotFound          = "NotFound"
	ErrorTypeGateway           = "GatewayError"
	ErrorTypeInvalidInput      = "InvalidInput"
	ErrorTypeInvalidState      = "InvalidState"
	ErrorTypeInvalidTransition = "InvalidTransition"
	ErrorTypeCallbackURL       = "CallbackURL"
)

// GatewayFailure is attached as details to gateway application errors.
type GatewayFailure struct {
	StatusCode int
	Body       string
	Timeout    bool
}

// Activities exposes the checkout steps to Temporal.
type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

func (a *Activities) CreatePendingOrder(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.PendingOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return nil, errors.New("checkout activities not initialized")
	}
	logger.Info("CreatePendingOrder activity started", "planId", input.PlanID)
	pending, err := a.service.CreatePendingOrder(ctx, input)
	if err != nil {
		logger.Error("CreatePendingOrder activity failed", "planId", input.PlanID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("CreatePendingOrder activity completed", "orderId", pending.OrderID)
	return pending, nil
}

func (a *Activities) OpenCheckoutSession(ctx context.Context, input ordertypes.OpenSessionInput) (*ordertypes.CheckoutResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return nil, errors.New("checkout activities not initialized")
	}
	logger.Info("OpenCheckoutSession activity started", "orderId", input.OrderID)
	result, err := a.service.OpenCheckoutSession(ctx, input)
	if err != nil {
		logger.Error("OpenCheckoutSession activity failed", "orderId", input.OrderID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("OpenCheckoutSession activity completed", "orderId", result.OrderID, "sessionId", result.SessionID)
	return result, nil
}

// toApplicationError marks business failures as non-retryable so the gateway is never called twice.
func toApplicationError(err error) error {
	var gatewayErr *ports.GatewayError
	switch {
	case errors.Is(err, application.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNotFound, err)
	case errors.As(err, &gatewayErr):
		details := GatewayFailure{StatusCode: gatewayErr.StatusCode, Body: gatewayErr.Body, Timeout: errors.Is(err, ports.ErrGatewayTimeout)}
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeGateway, err, details)
	case errors.Is(err, application.ErrGateway):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeGateway, err, GatewayFailure{})
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	case errors.Is(err, application.ErrInvalidState):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidState, err)
	case errors.Is(err, application.ErrInvalidTransition):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidTransition, err)
	case errors.Is(err, application.ErrCallbackURL):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeCallbackURL, err)
	default:
		return err
	}
}
