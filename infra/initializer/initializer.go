// Package initializer builds the application dependencies from configuration.
package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/amirasaad/ledgerbook/infra"
	infracache "github.com/amirasaad/ledgerbook/infra/cache"
	infraeventbus "github.com/amirasaad/ledgerbook/infra/eventbus"
	"github.com/amirasaad/ledgerbook/infra/metrics"
	infrarepo "github.com/amirasaad/ledgerbook/infra/repository"
	"github.com/amirasaad/ledgerbook/pkg/app"
	"github.com/amirasaad/ledgerbook/pkg/cache"
	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// brokerConnectTimeout bounds the initial broker handshake at startup.
const brokerConnectTimeout = 10 * time.Second

// Option customises InitializeDependencies.
type Option func(*options)

type options struct {
	logOutput io.Writer
}

// WithLogOutput sends the process log to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App, opts ...Option) (
	deps *app.Deps,
	err error,
) {
	o := options{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	deps = &app.Deps{}
	logger := setupLogger(cfg.Log, o.logOutput)
	deps.Logger = logger
	defer func() {
		if err != nil {
			for i := len(deps.Closers) - 1; i >= 0; i-- {
				_ = deps.Closers[i].Close()
			}
			deps = nil
		}
	}()

	// Apply migrations before the pool is opened
	if cfg.DB.Migrate {
		if err = infra.RunMigrations(cfg.DB, logger); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			return deps, err
		}
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return deps, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return deps, fmt.Errorf("failed to access database pool: %w", err)
	}
	deps.Closers = append(deps.Closers, sqlDB)
	deps.Uow = infrarepo.NewUoW(db)

	bus := infraeventbus.NewWithMemory(logger)
	deps.EventBus = bus

	if cfg.Metrics.Enabled {
		collector, err := metrics.NewCollector()
		if err != nil {
			return deps, fmt.Errorf("failed to create metrics collector: %w", err)
		}
		collector.Subscribe(bus)
		deps.RequestObserver = collector
		deps.MetricsHandler = promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})
	}

	if cfg.Cache != nil && cfg.Cache.TTL > 0 {
		c, closer, err := newCache(cfg.Cache, logger)
		if err != nil {
			return deps, err
		}
		deps.Cache = c
		deps.Closers = append(deps.Closers, closer)
	}

	publisher, closer, err := newPublisher(cfg.EventBus, logger)
	if err != nil {
		return deps, err
	}
	if publisher != nil {
		deps.Publisher = publisher
		deps.Closers = append(deps.Closers, closer)
		logger.Info("External event publisher enabled", "driver", cfg.EventBus.Driver)
	}
	return deps, nil
}

// newPublisher connects the broker selected by cfg.Driver. The memory driver
// needs no external publisher and yields nil.
func newPublisher(cfg *config.EventBus, logger *slog.Logger) (eventbus.Emitter, io.Closer, error) {
	switch cfg.Driver {
	case "", config.EventBusMemory:
		return nil, nil, nil
	case config.EventBusRedis:
		ctx, cancel := context.WithTimeout(context.Background(), brokerConnectTimeout)
		defer cancel()
		bus, err := infraeventbus.NewWithRedis(ctx, cfg.URL, cfg.Topic, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis event bus: %w", err)
		}
		return bus, bus, nil
	case config.EventBusKafka:
		bus, err := infraeventbus.NewWithKafka(cfg.URL, cfg.Topic, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Kafka event bus: %w", err)
		}
		return bus, bus, nil
	case config.EventBusAMQP:
		bus, err := infraeventbus.NewWithAMQP(cfg.URL, cfg.Topic, cfg.Queue, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create AMQP event bus: %w", err)
		}
		return bus, bus, nil
	default:
		return nil, nil, fmt.Errorf("unknown event bus driver %q", cfg.Driver)
	}
}

// newCache builds the summary cache selected by cfg.Driver.
func newCache(cfg *config.Cache, logger *slog.Logger) (cache.Cache, io.Closer, error) {
	switch cfg.Driver {
	case "", config.CacheMemory:
		c := infracache.NewMemoryCache(0)
		return c, c, nil
	case config.CacheRedis:
		ctx, cancel := context.WithTimeout(context.Background(), brokerConnectTimeout)
		defer cancel()
		c, err := infracache.NewRedisCache(ctx, cfg.URL, cfg.Prefix, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
