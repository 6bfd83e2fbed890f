// Package eventbus provides the in-process implementation of the event
// publisher port. Delivery is synchronous and best-effort: listeners run in
// subscription order, a panicking listener is logged and skipped, and
// nothing feeds back into the transition that produced the event.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"stateflow/internal/core/domain/events"
)

// Dispatcher fans published events out to registered listeners.
// Safe for concurrent Publish and Subscribe.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []events.Listener
	logger    *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Subscribe registers a listener for all subsequent events.
func (d *Dispatcher) Subscribe(listener events.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Publish delivers the event to every registered listener in subscription
// order. A listener panic is recovered and logged so the remaining listeners
// still receive the event.
func (d *Dispatcher) Publish(ctx context.Context, event events.Event) {
	d.mu.RLock()
	listeners := make([]events.Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	for _, listener := range listeners {
		d.deliver(ctx, listener, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, listener events.Listener, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event listener panicked",
				"kind", string(event.Kind),
				"item_id", event.ItemID.String(),
				"panic", r,
			)
		}
	}()

	listener.Handle(ctx, event)
}
