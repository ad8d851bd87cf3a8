package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	yococlient "github.com/cedrichouse/houseplans-api/internal/clients/http/yoco"
	catalogmemory "github.com/cedrichouse/houseplans-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/cedrichouse/houseplans-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/cedrichouse/houseplans-api/internal/domains/catalog/application"
	catalogports "github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
	inquirymemory "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/adapters/memory"
	inquirypostgres "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/adapters/persistence/postgres"
	inquiryapp "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/application"
	inquiryports "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/ports"
	ordercatalog "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/catalog"
	orderkafka "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/events/kafka"
	yocogateway "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/gateway/yoco"
	orderredis "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/locker/redis"
	ordermemory "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/persistence/postgres"
	receiptpdf "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/receipt/pdf"
	orderapp "github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	orderports "github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	platformkafka "github.com/cedrichouse/houseplans-api/internal/platform/kafka"
	"github.com/cedrichouse/houseplans-api/internal/platform/migrations"
	platformobservability "github.com/cedrichouse/houseplans-api/internal/platform/observability"
	platformpostgres "github.com/cedrichouse/houseplans-api/internal/platform/postgres"
	platformredis "github.com/cedrichouse/houseplans-api/internal/platform/redis"
)

// Dependencies holds the wired services shared by the API and the worker.
type Dependencies struct {
	Orders    orderports.Service
	Catalog   catalogports.Service
	Inquiries inquiryports.Service

	cleanups []func()
}

// Close releases connections in reverse order of acquisition.
func (d *Dependencies) Close() {
	for i := len(d.cleanups) - 1; i >= 0; i-- {
		d.cleanups[i]()
	}
}

type repositories struct {
	orders     orderports.Repository
	properties catalogports.Repository
	inquiries  inquiryports.Repository
}

// BuildDependencies wires repositories, gateway, renderer, locker and event publisher.
// Every external system is optional and falls back to an in-process implementation.
func BuildDependencies(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) *Dependencies {
	deps := &Dependencies{}
	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, instruments.Logger)
	deps.cleanups = append(deps.cleanups, closeDB)
	deps.wire(ctx, cfg, instruments, buildRepositories(db, instruments.Logger))
	return deps
}

// BuildPersistentDependencies is BuildDependencies without the in-memory store fallback.
// It fails when PostgreSQL is unset, unreachable or cannot be migrated.
func BuildPersistentDependencies(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Dependencies, error) {
	db, err := platformpostgres.Open(ctx, cfg.PostgresDSN, platformpostgres.DefaultPool, instruments.Logger)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{}
	deps.cleanups = append(deps.cleanups, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := migrations.Run(db); err != nil {
		deps.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	deps.wire(ctx, cfg, instruments, postgresRepositories(db))
	return deps, nil
}

func (deps *Dependencies) wire(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, repos repositories) {
	logger := instruments.Logger

	redisClient, closeRedis := platformredis.ConnectOptional(ctx, cfg.RedisAddr, logger)
	deps.cleanups = append(deps.cleanups, closeRedis)
	var locker orderports.Locker = ordermemory.NewLocker()
	if redisClient != nil {
		locker = orderredis.NewLocker(redisClient)
	}

	var events orderports.EventPublisher = orderports.NoopEventPublisher
	if writer := platformkafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger); writer != nil {
		deps.cleanups = append(deps.cleanups, func() { _ = writer.Close() })
		events = orderkafka.NewPublisher(writer, logger)
	}

	renderer := receiptpdf.NewRenderer(
		cfg.ReceiptCompanyName,
		receiptpdf.WithImageSource(receiptpdf.NewMediaImageSource(cfg.MediaRoot, cfg.ReceiptImageTimeout)),
		receiptpdf.WithLogger(logger),
	)

	coreOrders := orderapp.NewService(
		repos.orders,
		ordercatalog.New(repos.properties),
		buildGateway(cfg, logger),
		renderer,
		orderapp.Config{FrontendURL: cfg.FrontendURL, Currency: cfg.CheckoutCurrency},
		orderapp.WithLocker(locker),
		orderapp.WithEventPublisher(events),
		orderapp.WithEnforcedTransitions(cfg.EnforceTransitions),
	)
	deps.Orders = orderobs.New(
		coreOrders,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	deps.Catalog = catalogapp.NewService(repos.properties)
	deps.Inquiries = inquiryapp.NewService(repos.inquiries)
}

func postgresRepositories(db *gorm.DB) repositories {
	return repositories{
		orders:     orderpostgres.NewRepository(db),
		properties: catalogpostgres.NewRepository(db),
		inquiries:  inquirypostgres.NewRepository(db),
	}
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) repositories {
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to apply migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		} else {
			logger.Info("repositories configured with postgres")
			return postgresRepositories(db)
		}
	}
	return repositories{
		orders:     ordermemory.NewRepository(),
		properties: catalogmemory.NewRepository(),
		inquiries:  inquirymemory.NewRepository(),
	}
}

func buildGateway(cfg Config, logger *slog.Logger) orderports.PaymentGateway {
	mode := yococlient.DetectMode(cfg.YocoSecretKey, cfg.YocoPublicKey)
	yocoClient, err := yococlient.NewClient(cfg.YocoAPIURL, cfg.YocoSecretKey, yococlient.WithTimeout(cfg.YocoTimeout))
	if err != nil {
		logger.Warn("payment gateway not configured, checkouts will fail", slog.String("error", err.Error()))
		return yocogateway.NewGateway(nil)
	}
	attrs := []any{slog.String("mode", string(mode)), slog.String("secret_key", yococlient.MaskKey(cfg.YocoSecretKey))}
	switch mode {
	case yococlient.ModeMixed:
		logger.Warn("payment gateway keys target different environments", attrs...)
	case yococlient.ModeUnknown:
		logger.Warn("payment gateway key mode unknown", attrs...)
	default:
		logger.Info("payment gateway configured", attrs...)
	}
	return yocogateway.NewGateway(yocoClient)
}
