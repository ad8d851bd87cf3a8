package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

// Config is the immutable checkout configuration loaded at process start.
type Config struct {
	FrontendURL string
	Currency    string
}

// Service orchestrates the order lifecycle: checkout, confirmation and receipts.
type Service struct {
	orders             ports.Repository
	catalog            ports.Catalog
	gateway            ports.PaymentGateway
	receipts           ports.ReceiptRenderer
	locker             ports.Locker
	events             ports.EventPublisher
	cfg                Config
	now                func() time.Time
	enforceTransitions bool
}

// Option customises the service.
type Option func(*Service)

// WithLocker serializes per-order mutations through the given locker.
func WithLocker(locker ports.Locker) Option {
	return func(s *Service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithEventPublisher emits lifecycle events after successful writes.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithClock overrides the wall clock used for receipt numbering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEnforcedTransitions toggles the terminal-state guard on confirmations.
func WithEnforcedTransitions(enforce bool) Option {
	return func(s *Service) {
		s.enforceTransitions = enforce
	}
}

// NewService wires the checkout orchestrator with its collaborators.
func NewService(orders ports.Repository, catalog ports.Catalog, gateway ports.PaymentGateway, receipts ports.ReceiptRenderer, cfg Config, opts ...Option) *Service {
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = "ZAR"
	}
	s := &Service{
		orders:             orders,
		catalog:            catalog,
		gateway:            gateway,
		receipts:           receipts,
		locker:             passthroughLocker{},
		events:             ports.NoopEventPublisher,
		cfg:                cfg,
		now:                time.Now,
		enforceTransitions: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateCheckout creates a PENDING order for the plan and opens a gateway checkout session for it.
// A failed gateway call leaves the order PENDING.
func (s *Service) CreateCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	pending, err := s.CreatePendingOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.OpenCheckoutSession(ctx, ordertypes.OpenSessionInput{OrderID: pending.OrderID, OriginHint: input.OriginHint})
}

// CreatePendingOrder snapshots the plan price into a new PENDING order.
func (s *Service) CreatePendingOrder(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.PendingOrder, error) {
	plan, err := s.catalog.GetPlan(ctx, input.PlanID)
	if err != nil {
		return nil, mapError(err)
	}
	// No order is stored unless the gateway callbacks can be built.
	if resolveBaseURL(s.cfg.FrontendURL, input.OriginHint) == "" {
		return nil, ErrCallbackURL
	}
	order, err := domain.NewPendingOrder(*plan, input.CustomerEmail)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.OrderCreated{
		BaseEvent: domain.BaseEvent{OrderID: saved.ID, Timestamp: s.now()},
		PlanID:    saved.PlanID,
		Amount:    saved.Amount.StringFixed(2),
	})
	return &ordertypes.PendingOrder{OrderID: saved.ID, PlanID: saved.PlanID}, nil
}

// OpenCheckoutSession calls the gateway for an existing order and stores the returned session id.
func (s *Service) OpenCheckoutSession(ctx context.Context, input ordertypes.OpenSessionInput) (*ordertypes.CheckoutResult, error) {
	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	base := resolveBaseURL(s.cfg.FrontendURL, input.OriginHint)
	if base == "" {
		return nil, ErrCallbackURL
	}
	urls := buildCallbackURLs(base, order.ID)
	session, err := s.gateway.OpenCheckoutSession(ctx, ports.CheckoutSessionRequest{
		AmountMinorUnits: order.AmountMinorUnits(),
		Currency:         s.cfg.Currency,
		SuccessURL:       urls.success,
		CancelURL:        urls.cancel,
		FailureURL:       urls.failure,
		Metadata: map[string]string{
			"order_id": strconv.FormatInt(order.ID, 10),
			"plan_id":  strconv.FormatInt(order.PlanID, 10),
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	if session == nil {
		return nil, mapError(&ports.GatewayError{Err: errors.New("empty checkout session")})
	}

	unlock, err := s.locker.Lock(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	order, err = s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.AttachCheckoutSession(session.ID); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.orders.Save(ctx, order); err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.CheckoutSessionOpened{
		BaseEvent: domain.BaseEvent{OrderID: order.ID, Timestamp: s.now()},
		SessionID: session.ID,
	})
	return &ordertypes.CheckoutResult{RedirectURL: session.RedirectURL, OrderID: order.ID, SessionID: session.ID}, nil
}

// ConfirmPaid marks the order PAID on the buyer's success redirect.
// The gateway is not consulted; the redirect is trusted as-is.
func (s *Service) ConfirmPaid(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusPaid)
}

// ConfirmCancelled marks the order CANCELLED on the buyer's cancel or failure redirect.
func (s *Service) ConfirmCancelled(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusCancelled)
}

func (s *Service) transition(ctx context.Context, orderID int64, target domain.Status) (*domain.Order, error) {
	unlock, err := s.locker.Lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	from := order.Status
	changed, err := order.TransitionTo(target, s.enforceTransitions)
	if err != nil {
		return nil, mapError(err)
	}
	if !changed {
		return order, nil
	}
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent: domain.BaseEvent{OrderID: saved.ID, Timestamp: s.now()},
		From:      from,
		To:        saved.Status,
	})
	return saved, nil
}

// GenerateReceipt renders the receipt of a PAID order. The receipt number is assigned on the
// first successful render and reused afterwards; a failed render leaves the order untouched.
func (s *Service) GenerateReceipt(ctx context.Context, orderID int64) (*ordertypes.Receipt, error) {
	unlock, err := s.locker.Lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !order.ReceiptAllowed() {
		return nil, fmt.Errorf("%w: order %d is %s", ErrInvalidState, order.ID, order.Status)
	}
	plan, err := s.catalog.GetPlan(ctx, order.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: load plan %d: %w", ErrReceiptGeneration, order.PlanID, err)
	}

	firstIssue := order.ReceiptNumber == ""
	number := order.ReceiptNumber
	if firstIssue {
		number = domain.ReceiptNumberFor(order.ID, s.now())
	}
	content, err := s.render(ctx, *order, *plan, number)
	if err != nil {
		return nil, err
	}

	stored, err := s.orders.AssignReceipt(ctx, order.ID, number)
	if err != nil {
		return nil, fmt.Errorf("%w: persist receipt: %w", ErrReceiptGeneration, err)
	}
	if stored.ReceiptNumber != number {
		// Another writer assigned the number first; the stored one wins.
		number = stored.ReceiptNumber
		firstIssue = false
		if content, err = s.render(ctx, *stored, *plan, number); err != nil {
			return nil, err
		}
	}
	if firstIssue {
		s.publish(ctx, domain.ReceiptIssued{
			BaseEvent:     domain.BaseEvent{OrderID: order.ID, Timestamp: s.now()},
			ReceiptNumber: number,
		})
	}
	return &ordertypes.Receipt{OrderID: order.ID, Number: number, Content: content}, nil
}

func (s *Service) render(ctx context.Context, order domain.Order, plan domain.Plan, number string) ([]byte, error) {
	order.ReceiptNumber = number
	content, err := s.receipts.Render(ctx, ports.ReceiptDocument{Number: number, Order: order, Plan: plan})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReceiptGeneration, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrReceiptGeneration)
	}
	return content, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns every order, newest last.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ExpireStalePending marks PENDING orders created before the cutoff as FAILED and returns how many changed.
// Orders confirmed concurrently are skipped.
func (s *Service) ExpireStalePending(ctx context.Context, createdBefore time.Time) (int, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	expired := 0
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		if order.Status != domain.StatusPending || order.CreatedAt.IsZero() || !order.CreatedAt.Before(createdBefore) {
			continue
		}
		changed, err := s.expire(ctx, order.ID)
		if err != nil {
			return expired, err
		}
		if changed {
			expired++
		}
	}
	return expired, nil
}

func (s *Service) expire(ctx context.Context, orderID int64) (bool, error) {
	unlock, err := s.locker.Lock(ctx, orderID)
	if err != nil {
		return false, err
	}
	defer unlock()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return false, mapError(err)
	}
	if order.Status != domain.StatusPending {
		return false, nil
	}
	if _, err := order.TransitionTo(domain.StatusFailed, true); err != nil {
		return false, mapError(err)
	}
	if _, err := s.orders.Save(ctx, order); err != nil {
		return false, mapError(err)
	}
	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent: domain.BaseEvent{OrderID: order.ID, Timestamp: s.now()},
		From:      domain.StatusPending,
		To:        domain.StatusFailed,
	})
	return true, nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	// Delivery is best effort; publishers log their own failures.
	_ = s.events.Publish(ctx, event)
}

type passthroughLocker struct{}

func (passthroughLocker) Lock(context.Context, int64) (func(), error) { return func() {}, nil }

var _ ports.Service = (*Service)(nil)
