package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/memory"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

type fakeCatalog struct {
	plans map[int64]domain.Plan
}

func (f *fakeCatalog) GetPlan(_ context.Context, id int64) (*domain.Plan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, ports.ErrPlanNotFound
	}
	return &plan, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	requests []ports.CheckoutSessionRequest
	err      error
}

func (f *fakeGateway) OpenCheckoutSession(_ context.Context, req ports.CheckoutSessionRequest) (*ports.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &ports.CheckoutSession{ID: "ch_123", RedirectURL: "https://pay.example/ch_123"}, nil
}

type fakeRenderer struct {
	calls   []ports.ReceiptDocument
	failing bool
}

func (f *fakeRenderer) Render(_ context.Context, doc ports.ReceiptDocument) ([]byte, error) {
	f.calls = append(f.calls, doc)
	if f.failing {
		return nil, errors.New("font missing")
	}
	return []byte("%PDF-1.3 " + doc.Number), nil
}

type recordingPublisher struct {
	events []domain.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	r.events = append(r.events, event)
	return errors.New("broker down")
}

type serviceFixture struct {
	svc      *Service
	repo     *memory.Repository
	gateway  *fakeGateway
	renderer *fakeRenderer
	events   *recordingPublisher
}

func newFixture(t *testing.T, opts ...Option) serviceFixture {
	t.Helper()
	catalog := &fakeCatalog{plans: map[int64]domain.Plan{
		7: {ID: 7, Title: "Modern Farmhouse", Price: decimal.RequireFromString("150000.00")},
	}}
	f := serviceFixture{
		repo:     memory.NewRepository(),
		gateway:  &fakeGateway{},
		renderer: &fakeRenderer{},
		events:   &recordingPublisher{},
	}
	clock := func() time.Time { return time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC) }
	opts = append([]Option{WithClock(clock), WithEventPublisher(f.events), WithLocker(memory.NewLocker())}, opts...)
	f.svc = NewService(f.repo, catalog, f.gateway, f.renderer, Config{FrontendURL: "https://shop.example.com"}, opts...)
	return f
}

func (f serviceFixture) paidOrder(t *testing.T) int64 {
	t.Helper()
	res, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.NoError(t, err)
	_, err = f.svc.ConfirmPaid(context.Background(), res.OrderID)
	require.NoError(t, err)
	return res.OrderID
}

func TestCreateCheckout_OpensSessionForPendingOrder(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/ch_123", res.RedirectURL)
	require.Equal(t, int64(1), res.OrderID)

	require.Len(t, f.gateway.requests, 1)
	req := f.gateway.requests[0]
	require.Equal(t, int64(15000000), req.AmountMinorUnits)
	require.Equal(t, "ZAR", req.Currency)
	require.Equal(t, "https://shop.example.com/payment-success?order_id=1", req.SuccessURL)
	require.Equal(t, "https://shop.example.com/payment-cancel?order_id=1", req.CancelURL)
	require.Equal(t, req.CancelURL, req.FailureURL)
	require.Equal(t, map[string]string{"order_id": "1", "plan_id": "7"}, req.Metadata)

	order, err := f.svc.GetOrder(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, "ch_123", order.CheckoutSessionID)
	require.Equal(t, "150000.00", order.Amount.StringFixed(2))
}

func TestCreateCheckout_UnknownPlan(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 999})
	require.ErrorIs(t, err, ErrNotFound)

	orders, err := f.svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Empty(t, f.gateway.requests)
}

func TestCreateCheckout_GatewayFailureLeavesPendingOrder(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = &ports.GatewayError{StatusCode: 422, Body: `{"message":"bad amount"}`}

	_, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.ErrorIs(t, err, ErrGateway)
	var gatewayErr *ports.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	require.Equal(t, 422, gatewayErr.StatusCode)

	order, err := f.svc.GetOrder(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Empty(t, order.CheckoutSessionID)
}

func TestCreateCheckout_LocalFrontendFallsBackToOrigin(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.FrontendURL = "http://localhost:3000"

	_, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7, OriginHint: "https://preview.example.com/"})
	require.NoError(t, err)
	require.Equal(t, "https://preview.example.com/payment-success?order_id=1", f.gateway.requests[0].SuccessURL)
}

func TestCreateCheckout_NoCallbackBase(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.FrontendURL = ""

	_, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.ErrorIs(t, err, ErrCallbackURL)
	orders, _ := f.svc.ListOrders(context.Background())
	require.Empty(t, orders)
}

func TestCreateCheckout_UnknownPlanWithoutCallbackBase(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.FrontendURL = ""

	_, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 999})
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrCallbackURL)
	require.Empty(t, f.gateway.requests)
}

func TestConfirmPaid_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)

	order, err := f.svc.ConfirmPaid(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, order.Status)

	var paidEvents int
	for _, e := range f.events.events {
		if e.EventName() == "orders.order.paid" {
			paidEvents++
		}
	}
	require.Equal(t, 1, paidEvents)
}

func TestConfirmCancelled_AfterPaidIsRejected(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)

	_, err := f.svc.ConfirmCancelled(context.Background(), id)
	require.ErrorIs(t, err, ErrInvalidTransition)

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, order.Status)
}

func TestConfirmCancelled_UnenforcedOverwrites(t *testing.T) {
	f := newFixture(t, WithEnforcedTransitions(false))
	id := f.paidOrder(t)

	order, err := f.svc.ConfirmCancelled(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, order.Status)
}

func TestConfirm_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConfirmPaid(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.ConfirmCancelled(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateReceipt_RequiresPaid(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.NoError(t, err)

	_, err = f.svc.GenerateReceipt(context.Background(), res.OrderID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.Empty(t, f.renderer.calls)
}

func TestGenerateReceipt_NumberAssignedOnce(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)

	first, err := f.svc.GenerateReceipt(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "RCP-20261015-00001", first.Number)
	require.Equal(t, "receipt_RCP-20261015-00001.pdf", first.Filename())

	f.svc.now = func() time.Time { return time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC) }
	second, err := f.svc.GenerateReceipt(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, first.Number, second.Number)

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.True(t, order.ReceiptGenerated)
	require.Equal(t, first.Number, order.ReceiptNumber)
	require.Equal(t, "Modern Farmhouse", f.renderer.calls[0].Plan.Title)

	var issued int
	for _, e := range f.events.events {
		if _, ok := e.(domain.ReceiptIssued); ok {
			issued++
		}
	}
	require.Equal(t, 1, issued)
}

func TestGenerateReceipt_NumbersDifferAcrossOrders(t *testing.T) {
	f := newFixture(t)
	first := f.paidOrder(t)
	second := f.paidOrder(t)

	a, err := f.svc.GenerateReceipt(context.Background(), first)
	require.NoError(t, err)
	b, err := f.svc.GenerateReceipt(context.Background(), second)
	require.NoError(t, err)

	require.Equal(t, "RCP-20261015-00001", a.Number)
	require.Equal(t, "RCP-20261015-00002", b.Number)
	require.NotEqual(t, a.Number, b.Number)
}

func TestGenerateReceipt_RenderFailurePersistsNothing(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)
	f.renderer.failing = true

	_, err := f.svc.GenerateReceipt(context.Background(), id)
	require.ErrorIs(t, err, ErrReceiptGeneration)

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.False(t, order.ReceiptGenerated)
	require.Empty(t, order.ReceiptNumber)
}

func TestGenerateReceipt_StoredNumberWins(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)
	_, err := f.repo.AssignReceipt(context.Background(), id, "RCP-20260101-00001")
	require.NoError(t, err)

	receipt, err := f.svc.GenerateReceipt(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "RCP-20260101-00001", receipt.Number)
	require.Equal(t, "%PDF-1.3 RCP-20260101-00001", string(receipt.Content))
}

func TestGenerateReceipt_ConcurrentRequestsShareNumber(t *testing.T) {
	f := newFixture(t)
	id := f.paidOrder(t)

	var wg sync.WaitGroup
	numbers := make([]string, 8)
	for i := range numbers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receipt, err := f.svc.GenerateReceipt(context.Background(), id)
			if err == nil {
				numbers[i] = receipt.Number
			}
		}(i)
	}
	wg.Wait()
	for _, n := range numbers {
		require.Equal(t, "RCP-20261015-00001", n)
	}
}

func TestExpireStalePending_FailsOnlyOldPendingOrders(t *testing.T) {
	f := newFixture(t)
	paid := f.paidOrder(t)
	pending, err := f.svc.CreateCheckout(context.Background(), ordertypes.CreateCheckoutInput{PlanID: 7})
	require.NoError(t, err)

	expired, err := f.svc.ExpireStalePending(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Zero(t, expired)

	expired, err = f.svc.ExpireStalePending(context.Background(), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, expired)

	order, err := f.svc.GetOrder(context.Background(), pending.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, order.Status)
	order, err = f.svc.GetOrder(context.Background(), paid)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, order.Status)

	_, err = f.svc.ConfirmPaid(context.Background(), pending.OrderID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}
