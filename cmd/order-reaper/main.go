package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cedrichouse/houseplans-api/internal/app/api"
	orderports "github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	platformobservability "github.com/cedrichouse/houseplans-api/internal/platform/observability"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}
	if cfg.PostgresDSN == "" {
		log.Print("POSTGRES_DSN not set; in-memory orders do not outlive the API process, nothing to expire")
		return 1
	}

	instruments, shutdown, err := platformobservability.Init(ctx, "houseplans-order-reaper")
	if err != nil {
		log.Printf("failed to initialize observability: %v", err)
		return 1
	}
	defer func() { _ = shutdown(context.Background()) }()

	deps, err := api.BuildPersistentDependencies(ctx, cfg, instruments)
	if err != nil {
		instruments.Logger.Error("order store unavailable", slog.String("error", err.Error()))
		return 1
	}
	defer deps.Close()

	if err := expire(ctx, deps.Orders, time.Now().Add(-cfg.PendingOrderTTL), instruments.Logger); err != nil {
		return 1
	}
	return 0
}

func expire(ctx context.Context, orders orderports.Service, cutoff time.Time, logger *slog.Logger) error {
	expired, err := orders.ExpireStalePending(ctx, cutoff)
	if err != nil {
		logger.Error("order expiry aborted",
			slog.Int("orders.expired", expired),
			slog.String("error", err.Error()))
		return err
	}
	logger.Info("pending order expiry completed",
		slog.Int("orders.expired", expired),
		slog.Time("created_before", cutoff))
	return nil
}
