package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EventBus drivers understood by the initializer.
const (
	EventBusMemory = "memory"
	EventBusRedis  = "redis"
	EventBusKafka  = "kafka"
	EventBusAMQP   = "amqp"
)

var eventBusDrivers = []string{EventBusMemory, EventBusRedis, EventBusKafka, EventBusAMQP}

// Cache drivers understood by the initializer.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var cacheDrivers = []string{CacheMemory, CacheRedis}

// Load reads the first environment file found among envFilePath (searching parent
// directories), falling back to ./.env, and decodes the environment into an App.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"cors_origins", cfg.CORS.Origins,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"event_bus_driver", cfg.EventBus.Driver,
		"event_bus_url", maskValue(cfg.EventBus.URL),
		"metrics_enabled", cfg.Metrics.Enabled,
		"cache_driver", cfg.Cache.Driver,
		"cache_ttl", cfg.Cache.TTL,
	)
	return &cfg, nil
}

// Validate checks the values envconfig cannot express with tags.
func (a *App) Validate() error {
	var errs []error
	if a.DB == nil || a.DB.Url == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if a.Server != nil && (a.Server.Port < 1 || a.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("SERVER_PORT %d out of range", a.Server.Port))
	}
	if a.EventBus != nil {
		if !slices.Contains(eventBusDrivers, a.EventBus.Driver) {
			errs = append(errs, fmt.Errorf("EVENT_BUS_DRIVER %q must be one of %v", a.EventBus.Driver, eventBusDrivers))
		} else if a.EventBus.Driver != EventBusMemory && a.EventBus.URL == "" {
			errs = append(errs, fmt.Errorf("EVENT_BUS_URL is required for driver %q", a.EventBus.Driver))
		}
	}
	if a.Cache != nil {
		if !slices.Contains(cacheDrivers, a.Cache.Driver) {
			errs = append(errs, fmt.Errorf("CACHE_DRIVER %q must be one of %v", a.Cache.Driver, cacheDrivers))
		} else if a.Cache.Driver == CacheRedis && a.Cache.URL == "" {
			errs = append(errs, errors.New("CACHE_URL is required for driver \"redis\""))
		}
		if a.Cache.TTL < 0 {
			errs = append(errs, errors.New("CACHE_TTL must not be negative"))
		}
	}
	if a.RateLimit != nil && a.RateLimit.MaxRequests < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS must be positive"))
	}
	if a.Report != nil {
		if a.Report.RecentLimit < 1 || a.Report.RecentLimit > 1000 {
			errs = append(errs, fmt.Errorf("REPORT_RECENT_LIMIT %d out of range", a.Report.RecentLimit))
		}
		if a.Report.ChartDays < 1 || a.Report.ChartDays > 3650 {
			errs = append(errs, fmt.Errorf("REPORT_CHART_DAYS %d out of range", a.Report.ChartDays))
		}
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the app runs in the development environment.
func (a *App) IsDevelopment() bool {
	return a.Env == "development"
}

func maskValue(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
