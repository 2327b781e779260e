package app

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/amirasaad/ledgerbook/pkg/cache"
	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/amirasaad/ledgerbook/pkg/middleware"
	"github.com/amirasaad/ledgerbook/pkg/repository"
	"github.com/amirasaad/ledgerbook/pkg/service/account"
	"github.com/amirasaad/ledgerbook/pkg/service/report"
	"github.com/amirasaad/ledgerbook/pkg/service/transaction"
)

// Deps contains everything the services and the HTTP layer are built from.
type Deps struct {
	Uow repository.UnitOfWork
	// EventBus dispatches to in-process subscribers.
	EventBus eventbus.Bus
	// Publisher forwards events to an external broker; nil when none is configured.
	Publisher eventbus.Emitter
	Logger    *slog.Logger

	// Cache memoises the ledger summary; nil disables caching.
	Cache cache.Cache

	RequestObserver middleware.RequestObserver
	MetricsHandler  http.Handler

	// Closers are released in reverse order by App.Close.
	Closers []io.Closer
}

// Emitter returns the emitter services publish to: the in-process bus plus
// the external publisher when there is one.
func (d *Deps) Emitter() eventbus.Emitter {
	if d.Publisher == nil {
		return d.EventBus
	}
	return eventbus.Multi{d.EventBus, d.Publisher}
}

// App holds the services built from Deps.
type App struct {
	Deps               *Deps
	Config             *config.App
	AccountService     *account.Service
	TransactionService *transaction.Service
	ReportService      *report.Service
}

// New builds the services and subscribes the in-process handlers to the bus.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	SetupBus(deps.EventBus, deps.Logger)

	emitter := deps.Emitter()
	app.AccountService = account.New(deps.Uow, emitter, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, emitter, deps.Logger)
	app.ReportService = report.New(deps.Uow, deps.Logger)
	if deps.Cache != nil && cfg.Cache != nil {
		app.ReportService.WithCache(deps.Cache, cfg.Cache.TTL)
		if deps.EventBus != nil {
			for _, t := range ledgerEventTypes {
				deps.EventBus.Register(t, app.ReportService.InvalidateSummary)
			}
		}
	}
	return app
}

// Close releases every dependency that holds a connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
