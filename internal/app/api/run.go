package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	houseplansserver "github.com/cedrichouse/houseplans-api/go"

	orderworkflows "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/workflows"
	orderports "github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	"github.com/cedrichouse/houseplans-api/internal/domains/site"
	platformobservability "github.com/cedrichouse/houseplans-api/internal/platform/observability"
	platformtemporal "github.com/cedrichouse/houseplans-api/internal/platform/temporal"
)

const serviceName = "houseplans-api"

// Run boots the house plans HTTP API with observability, repositories, and workflows wired.
// It blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
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

	content, err := site.Load()
	if err != nil {
		return err
	}
	deps := BuildDependencies(ctx, cfg, instruments)
	defer deps.Close()

	var checkoutWorkflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineCheckoutWorkflows(deps.Orders)
	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkoutWorkflows = orderworkflows.NewTemporalCheckoutWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := houseplansserver.ApiHandleFunctions{
		OrderAPI:   houseplansserver.NewOrderAPI(deps.Orders, checkoutWorkflows),
		CatalogAPI: houseplansserver.NewCatalogAPI(deps.Catalog, cfg.MediaURL),
		InquiryAPI: houseplansserver.NewInquiryAPI(deps.Inquiries),
		SiteAPI:    houseplansserver.NewSiteAPI(content),
	}
	if limiter := houseplansserver.NewSubmissionLimiter(cfg.SubmissionRatePerMinute, cfg.SubmissionBurst); limiter != nil {
		handlers.Throttle = limiter.Middleware()
	}

	engine := gin.New()
	engine.Use(gin.Logger(), houseplansserver.Recovery(), otelgin.Middleware(serviceName))
	router := houseplansserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("House plans API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("House plans API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("House plans API shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
