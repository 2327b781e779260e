// Package eventbus defines how services publish domain events and how
// in-process subscribers receive them.
package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
)

// HandlerFunc handles a single event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Emitter publishes events. Services depend on this narrow contract only.
type Emitter interface {
	Emit(ctx context.Context, event events.Event) error
}

// Bus is an Emitter that also dispatches to registered handlers.
type Bus interface {
	Emitter
	Register(eventType events.EventType, handler HandlerFunc)
}

// Multi fans an event out to several emitters, returning the first error after
// every emitter has been tried.
type Multi []Emitter

// Emit implements Emitter.
func (m Multi) Emit(ctx context.Context, event events.Event) error {
	var first error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Nop discards every event.
type Nop struct{}

// Emit implements Emitter.
func (Nop) Emit(context.Context, events.Event) error { return nil }

// EmitAndLog emits event and logs instead of returning a failure. Mutations
// call it after commit, where the write has already succeeded.
func EmitAndLog(ctx context.Context, emitter Emitter, logger *slog.Logger, event events.Event) {
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil {
		logger.Warn("event publish failed", "type", event.Type(), "error", err)
	}
}
