package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	checkoutactivities "github.com/cedrichouse/houseplans-api/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/cedrichouse/houseplans-api/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows starts checkout workflows on a Temporal cluster.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckoutWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

// StartCheckout runs the checkout workflow and waits for the gateway redirect.
// Requests sharing an idempotency key resolve to the same workflow and therefore the same order.
func (o *TemporalCheckoutWorkflows) StartCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflowName,
		checkoutworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result ordertypes.CheckoutResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, fromWorkflowError(err)
			}
			return &result, nil
		}
		return nil, err
	}
	var result ordertypes.CheckoutResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &result, nil
}

// InlineCheckoutWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineCheckoutWorkflows struct {
	service ports.Service
}

// NewInlineCheckoutWorkflows wraps the orders service for synchronous execution.
func NewInlineCheckoutWorkflows(service ports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{service: service}
}

// StartCheckout delegates to the application service without durable orchestration.
func (o *InlineCheckoutWorkflows) StartCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout workflows not configured")
	}
	return o.service.CreateCheckout(ctx, input)
}

// fromWorkflowError restores the application error kinds flattened by the activity boundary.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case checkoutactivities.ErrorTypeNotFound:
		return fmt.Errorf("%w: %s", application.ErrNotFound, appErr.Message())
	case checkoutactivities.ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case checkoutactivities.ErrorTypeInvalidState:
		return fmt.Errorf("%w: %s", application.ErrInvalidState, appErr.Message())
	case checkoutactivities.ErrorTypeInvalidTransition:
		return fmt.Errorf("%w: %s", application.ErrInvalidTransition, appErr.Message())
	case checkoutactivities.ErrorTypeCallbackURL:
		return application.ErrCallbackURL
	case checkoutactivities.ErrorTypeGateway:
		var failure checkoutactivities.GatewayFailure
		if appErr.HasDetails() {
			_ = appErr.Details(&failure)
		}
		cause := errors.New(appErr.Message())
		if failure.Timeout {
			cause = errors.Join(ports.ErrGatewayTimeout, cause)
		}
		return fmt.Errorf("%w: %w", application.ErrGateway, &ports.GatewayError{StatusCode: failure.StatusCode, Body: failure.Body, Err: cause})
	default:
		return err
	}
}

func buildCheckoutWorkflowID(input ordertypes.CreateCheckoutInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-checkout-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-checkout-%d-%s", input.PlanID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable and deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
