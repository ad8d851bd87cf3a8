package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/cedrichouse/houseplans-api/internal/app/api"
	checkoutactivities "github.com/cedrichouse/houseplans-api/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/cedrichouse/houseplans-api/internal/durable/temporal/workflows/checkout"
	platformobservability "github.com/cedrichouse/houseplans-api/internal/platform/observability"
	platformtemporal "github.com/cedrichouse/houseplans-api/internal/platform/temporal"
)

const serviceName = "houseplans-worker"

// Run hosts the checkout workflow and its activities until ctx is cancelled.
func Run(ctx context.Context, cfg api.Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.PostgresDSN == "" {
		logger.Warn("worker running without POSTGRES_DSN; orders created here are not visible to the API")
	}

	deps := api.BuildDependencies(ctx, cfg, instruments)
	defer deps.Close()

	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	acts := checkoutactivities.NewActivities(deps.Orders)
	w := worker.New(temporalClient, checkoutworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(acts.CreatePendingOrder, activity.RegisterOptions{Name: checkoutactivities.CreatePendingOrderActivityName})
	w.RegisterActivityWithOptions(acts.OpenCheckoutSession, activity.RegisterOptions{Name: checkoutactivities.OpenCheckoutSessionActivityName})

	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.CheckoutTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(interrupt); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
