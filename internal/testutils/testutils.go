// Package testutils provides migrated throwaway databases and configuration for tests.
package testutils

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/ledgerbook/infra"
	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestConfig returns a complete configuration pointing at a fresh SQLite file
// in a per-test temporary directory.
func NewTestConfig(t testing.TB) *config.App {
	t.Helper()
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 8000},
		Log:    &config.Log{Format: "text", TimeFormat: time.Kitchen, Prefix: "[test]"},
		DB: &config.DB{
			Url:          "sqlite:///" + filepath.Join(t.TempDir(), "ledger.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			Migrate:      true,
		},
		CORS:      &config.CORS{Origins: []string{"http://localhost:5173"}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		EventBus:  &config.EventBus{Driver: config.EventBusMemory, Topic: "ledgerbook.test", Queue: "ledgerbook.test"},
		Metrics:   &config.Metrics{Enabled: true, Route: "/metrics"},
		Cache:     &config.Cache{Driver: config.CacheMemory, Prefix: "ledgerbook:test:"},
		Report:    &config.Report{RecentLimit: 10, ChartDays: 30},
	}
}

// NewTestDB opens a migrated SQLite database that is closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := NewTestConfig(t)
	require.NoError(t, infra.RunMigrations(cfg.DB, nil))

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
