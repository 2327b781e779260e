// Package app assembles the services from their dependencies and registers
// the in-process event subscribers.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
)

// ledgerEventTypes lists every event a committed mutation can produce.
var ledgerEventTypes = []events.EventType{
	events.EventTypeAccountCreated,
	events.EventTypeAccountUpdated,
	events.EventTypeAccountDeleted,
	events.EventTypeTransactionCreated,
	events.EventTypeTransactionUpdated,
	events.EventTypeTransactionDeleted,
}

// SetupBus registers the in-process subscribers on bus.
func SetupBus(bus eventbus.Bus, logger *slog.Logger) {
	if bus == nil {
		return
	}
	for _, t := range ledgerEventTypes {
		bus.Register(t, LogEvent(logger))
	}
}

// LogEvent returns a handler that writes each event to the debug log.
func LogEvent(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		logger.DebugContext(ctx, "ledger event", "type", e.Type(), "event", e)
		return nil
	}
}
