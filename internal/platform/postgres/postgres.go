package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNoDSN is returned by Open when no connection string is configured.
var ErrNoDSN = errors.New("postgres: empty DSN")

// Pool bounds the database/sql pool behind GORM.
type Pool struct {
	MaxOpen       int
	MaxIdle       int
	IdleTimeout   time.Duration
	PingTimeout   time.Duration
	SlowQueryWarn time.Duration
}

// DefaultPool suits a single API replica.
var DefaultPool = Pool{
	MaxOpen:       20,
	MaxIdle:       5,
	IdleTimeout:   5 * time.Minute,
	PingTimeout:   5 * time.Second,
	SlowQueryWarn: 500 * time.Millisecond,
}

// Open connects to dsn and pings it once. SQL warnings and slow queries go to logger.
func Open(ctx context.Context, dsn string, pool Pool, logger *slog.Logger) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrNoDSN
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(slog.NewLogLogger(logger.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             pool.SlowQueryWarn,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpen)
	sqlDB.SetMaxIdleConns(pool.MaxIdle)
	sqlDB.SetConnMaxIdleTime(pool.IdleTimeout)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectOptional returns nil and a no-op cleanup when dsn is unset or unreachable.
// Callers then use the in-memory repositories.
func ConnectOptional(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	db, err := Open(ctx, dsn, DefaultPool, logger)
	switch {
	case errors.Is(err, ErrNoDSN):
		logger.Warn("POSTGRES_DSN not set, using in-memory repositories")
		return nil, noop
	case err != nil:
		logger.Warn("postgres unavailable, using in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}
	logger.Info("postgres connected", slog.Int("max_open_conns", DefaultPool.MaxOpen))
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
