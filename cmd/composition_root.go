package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/in/rpc"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/redis"
	"logistics/internal/adapters/out/rpcledger"
	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/metrics"
	"logistics/internal/pkg/ratelimiter"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const rateLimiterIdleTTL = 10 * time.Minute

// CompositionRoot owns the process wide dependencies: the storage handle,
// the ledger the transports drive and the metrics registry.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Ledger

	// uowFactory is nil when the ledger is remote.
	uowFactory ports.UnitOfWorkFactory
	ledger     ports.TripLedger
	health     httpadapter.HealthCheck

	closers []func() error
}

// NewCompositionRoot opens the configured storage, running migrations for
// postgres, and builds the ledger on top of it. With LEDGER_RPC_URL set no
// storage is opened and the ledger is the remote endpoint.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics, err := metrics.NewLedger(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  ledgerMetrics,
	}

	if cfg.RemoteLedger() {
		client := rpcledger.New(cfg.LedgerRPCURL, rpcledger.WithLogger(logger))
		c.ledger = client
		c.health = httpadapter.HealthCheck{
			Storage:  "rpc",
			LedgerID: cfg.LedgerID.String(),
			Ping:     client.Ping,
		}
		return c, nil
	}

	if err = c.openStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.ledger = tripledger.NewLocal(c.uowFactory,
		tripledger.WithObserver(ledgerMetrics),
		tripledger.WithLogger(logger),
	)
	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	health := httpadapter.HealthCheck{
		Storage:  c.cfg.Storage,
		LedgerID: c.cfg.LedgerID.String(),
	}

	switch c.cfg.Storage {
	case StoragePostgres:
		sqlDB, gormDB, err := postgres.Open(c.cfg.PostgresDSN(), c.logger)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)

		version, err := postgres.Migrate(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		c.logger.InfoContext(ctx, "Database schema is up to date", "version", version)

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.cfg.LedgerID)
		health.Ping = pingSQL(sqlDB)

	case StorageRedis:
		store := redis.New(c.cfg.RedisAddr, c.cfg.RedisPassword, c.cfg.RedisDB)
		c.closers = append(c.closers, store.Close)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		c.uowFactory = redis.NewUnitOfWorkFactory(store, c.cfg.LedgerID)
		health.Ping = store.Ping

	case StorageMemory:
		c.logger.WarnContext(ctx, "Using in-memory storage, the trip is lost on restart")
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(), c.cfg.LedgerID)

	default:
		return fmt.Errorf("unsupported storage %q", c.cfg.Storage)
	}

	c.health = health
	return nil
}

func pingSQL(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// Ledger returns the ledger the transports drive.
func (c *CompositionRoot) Ledger() ports.TripLedger {
	return c.ledger
}

// StorageName reports the backend the ledger runs on, "rpc" when remote.
func (c *CompositionRoot) StorageName() string {
	return c.health.Storage
}

// NewRouter builds the gateway and mounts /metrics, plus /rpc when the
// ledger runs in this process.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpadapter.NewServer(c.ledger, c.health)
	e, err := httpadapter.NewRouter(ctx, server, httpadapter.RouterConfig{
		AllowedOrigins: c.cfg.CORSOrigins,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, err
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		Registry: c.registry,
	})))

	if c.uowFactory != nil {
		limiter := ratelimiter.New(c.cfg.RPCRateLimitRPS, c.cfg.RPCRateLimitBurst(), rateLimiterIdleTTL)
		rpc.NewHandler(c.ledger,
			rpc.WithRateLimiter(limiter),
			rpc.WithLogger(c.logger),
		).Register(e, "/rpc")
	}

	return e, nil
}

// NewJobManager returns the scheduled jobs. A remote ledger has no local
// slot to watch, so it gets none.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	if c.uowFactory == nil {
		return jobs.NewJobManager()
	}
	return jobs.NewJobManager(
		jobs.NewTripStatusJob(c.uowFactory, c.metrics, c.cfg.StatusJobSchedule, c.logger),
	)
}

// Close releases the storage handles in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}
