package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

// stubService implements only the checkout steps; other calls panic through the nil embed.
type stubService struct {
	ports.Service
	pendingErr error
	sessionErr error
}

func (s *stubService) CreatePendingOrder(_ context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.PendingOrder, error) {
	if s.pendingErr != nil {
		return nil, s.pendingErr
	}
	return &ordertypes.PendingOrder{OrderID: 11, PlanID: input.PlanID}, nil
}

func (s *stubService) OpenCheckoutSession(_ context.Context, input ordertypes.OpenSessionInput) (*ordertypes.CheckoutResult, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	return &ordertypes.CheckoutResult{OrderID: input.OrderID, SessionID: "ch_11", RedirectURL: "https://pay.example/ch_11"}, nil
}

func newActivityEnv(t *testing.T, svc ports.Service) *testsuite.TestActivityEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	acts := NewActivities(svc)
	env.RegisterActivity(acts.CreatePendingOrder)
	env.RegisterActivity(acts.OpenCheckoutSession)
	return env
}

func TestCreatePendingOrder_ReturnsOrder(t *testing.T) {
	env := newActivityEnv(t, &stubService{})

	val, err := env.ExecuteActivity((&Activities{}).CreatePendingOrder, ordertypes.CreateCheckoutInput{PlanID: 7})
	require.NoError(t, err)

	var pending ordertypes.PendingOrder
	require.NoError(t, val.Get(&pending))
	require.Equal(t, int64(11), pending.OrderID)
	require.Equal(t, int64(7), pending.PlanID)
}

func TestCreatePendingOrder_UnknownPlanIsNonRetryable(t *testing.T) {
	env := newActivityEnv(t, &stubService{pendingErr: fmt.Errorf("%w: %w", application.ErrNotFound, ports.ErrPlanNotFound)})

	_, err := env.ExecuteActivity((&Activities{}).CreatePendingOrder, ordertypes.CreateCheckoutInput{PlanID: 99})

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, ErrorTypeNotFound, appErr.Type())
	require.True(t, appErr.NonRetryable())
}

func TestOpenCheckoutSession_GatewayFailureCarriesDetails(t *testing.T) {
	gatewayErr := &ports.GatewayError{StatusCode: 402, Body: `{"errorCode":"card_declined"}`}
	env := newActivityEnv(t, &stubService{sessionErr: fmt.Errorf("%w: %w", application.ErrGateway, gatewayErr)})

	_, err := env.ExecuteActivity((&Activities{}).OpenCheckoutSession, ordertypes.OpenSessionInput{OrderID: 11})

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, ErrorTypeGateway, appErr.Type())
	require.True(t, appErr.NonRetryable())

	var failure GatewayFailure
	require.NoError(t, appErr.Details(&failure))
	require.Equal(t, 402, failure.StatusCode)
	require.Equal(t, `{"errorCode":"card_declined"}`, failure.Body)
	require.False(t, failure.Timeout)
}

func TestToApplicationError_PassesThroughUnknownErrors(t *testing.T) {
	boom := errors.New("database unavailable")
	require.Same(t, boom, toApplicationError(boom))
}
