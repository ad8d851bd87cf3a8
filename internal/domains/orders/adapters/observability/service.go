package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

const tracerName = "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateCheckout", trace.WithAttributes(attribute.Int64("plan.id", input.PlanID)))
	defer span.End()

	s.logInfo(ctx, "creating checkout", slog.Int64("plan.id", input.PlanID))
	result, err := s.inner.CreateCheckout(ctx, input)
	if err != nil {
		s.metrics.recordGatewayFailure(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to create checkout", slog.Int64("plan.id", input.PlanID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.OrderID))
	s.metrics.recordCheckoutOpened(ctx)
	s.logInfo(ctx, "checkout created", slog.Int64("order.id", result.OrderID), slog.String("checkout.session_id", result.SessionID))
	return result, nil
}

func (s *Service) CreatePendingOrder(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.PendingOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreatePendingOrder", trace.WithAttributes(attribute.Int64("plan.id", input.PlanID)))
	defer span.End()

	result, err := s.inner.CreatePendingOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create pending order", slog.Int64("plan.id", input.PlanID))
	}
	s.logInfo(ctx, "pending order created", slog.Int64("order.id", result.OrderID), slog.Int64("plan.id", result.PlanID))
	return result, nil
}

func (s *Service) OpenCheckoutSession(ctx context.Context, input ordertypes.OpenSessionInput) (*ordertypes.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.OpenCheckoutSession", trace.WithAttributes(attribute.Int64("order.id", input.OrderID)))
	defer span.End()

	result, err := s.inner.OpenCheckoutSession(ctx, input)
	if err != nil {
		s.metrics.recordGatewayFailure(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to open checkout session", slog.Int64("order.id", input.OrderID))
	}
	s.metrics.recordCheckoutOpened(ctx)
	s.logInfo(ctx, "checkout session opened", slog.Int64("order.id", result.OrderID), slog.String("checkout.session_id", result.SessionID))
	return result, nil
}

func (s *Service) ConfirmPaid(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.confirm(ctx, "OrdersService.ConfirmPaid", orderID, s.inner.ConfirmPaid)
}

func (s *Service) ConfirmCancelled(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.confirm(ctx, "OrdersService.ConfirmCancelled", orderID, s.inner.ConfirmCancelled)
}

func (s *Service) confirm(ctx context.Context, name string, orderID int64, call func(context.Context, int64) (*domain.Order, error)) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "confirming order", slog.Int64("order.id", orderID))
	result, err := call(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm order", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	s.metrics.recordStatusChange(ctx, result.Status)
	s.logInfo(ctx, "order confirmed", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) GenerateReceipt(ctx context.Context, orderID int64) (*ordertypes.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GenerateReceipt", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "generating receipt", slog.Int64("order.id", orderID))
	result, err := s.inner.GenerateReceipt(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to generate receipt", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.String("receipt.number", result.Number), attribute.Int("receipt.bytes", len(result.Content)))
	s.metrics.recordReceipt(ctx)
	s.logInfo(ctx, "receipt generated", slog.Int64("order.id", orderID), slog.String("receipt.number", result.Number))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) ExpireStalePending(ctx context.Context, createdBefore time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ExpireStalePending", trace.WithAttributes(attribute.String("orders.created_before", createdBefore.UTC().Format(time.RFC3339))))
	defer span.End()

	expired, err := s.inner.ExpireStalePending(ctx, createdBefore)
	if err != nil {
		return expired, s.handleError(ctx, span, err, "failed to expire pending orders", slog.Int("orders.expired", expired))
	}
	span.SetAttributes(attribute.Int("orders.expired", expired))
	for i := 0; i < expired; i++ {
		s.metrics.recordStatusChange(ctx, domain.StatusFailed)
	}
	s.logInfo(ctx, "stale pending orders expired", slog.Int("orders.expired", expired))
	return expired, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	checkoutsOpened   metric.Int64Counter
	gatewayFailures   metric.Int64Counter
	statusChanges     metric.Int64Counter
	receiptsGenerated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkoutsOpened, _ := m.Int64Counter("orders.service.checkouts_opened", metric.WithDescription("Number of gateway checkout sessions opened"))
	gatewayFailures, _ := m.Int64Counter("orders.service.gateway_failures", metric.WithDescription("Number of failed gateway calls"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order confirmations by resulting status"))
	receiptsGenerated, _ := m.Int64Counter("orders.service.receipts_generated", metric.WithDescription("Number of receipts rendered"))
	return serviceMetrics{
		checkoutsOpened:   checkoutsOpened,
		gatewayFailures:   gatewayFailures,
		statusChanges:     statusChanges,
		receiptsGenerated: receiptsGenerated,
	}
}

func (m serviceMetrics) recordCheckoutOpened(ctx context.Context) {
	if m.checkoutsOpened != nil {
		m.checkoutsOpened.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordGatewayFailure(ctx context.Context, err error) {
	if m.gatewayFailures != nil && errors.Is(err, application.ErrGateway) {
		m.gatewayFailures.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status domain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordReceipt(ctx context.Context) {
	if m.receiptsGenerated != nil {
		m.receiptsGenerated.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
