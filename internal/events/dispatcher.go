// Package events implements the transactional event-dispatch engine: the
// dispatcher fan-out, the unit-of-work commit boundary, and the outbox
// relay that redelivers events a crash left behind.
package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
)

// Handler reacts to exactly one event type.
type Handler interface {
	// EventName is the single event name the handler subscribes to.
	EventName() string
	// Handle processes one committed event.
	Handle(ctx context.Context, ev domain.Event) error
}

// Dispatcher fans committed events out to subscribed handlers,
// synchronously and in subscription order. It performs no retries itself;
// redelivery is the relay's job.
type Dispatcher struct {
	handlers map[string][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler under its event name. Not safe for
// concurrent use; subscriptions happen once at startup.
func (d *Dispatcher) Subscribe(h Handler) {
	name := h.EventName()
	d.handlers[name] = append(d.handlers[name], h)
}

// Dispatch drains the pending events of each aggregate, in the order the
// aggregates were enumerated at commit time. This is commit-enumeration
// order, not a global event-time order across aggregates. After every
// handler for an aggregate's events has run, that aggregate's queue is
// cleared. A handler failure is logged and propagated; the failing
// aggregate's queue stays populated and its outbox rows stay undispatched
// for the relay.
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates []domain.Aggregate) error {
	for _, agg := range aggregates {
		for _, ev := range agg.PendingEvents() {
			if err := d.deliver(ctx, ev); err != nil {
				return err
			}
		}
		agg.ClearEvents()
	}
	return nil
}

// Deliver invokes every handler subscribed to the event, in subscription
// order. Used directly by the relay for redelivered events.
func (d *Dispatcher) Deliver(ctx context.Context, ev domain.Event) error {
	return d.deliver(ctx, ev)
}

func (d *Dispatcher) deliver(ctx context.Context, ev domain.Event) error {
	for _, h := range d.handlers[ev.Name] {
		if err := h.Handle(ctx, ev); err != nil {
			logger.ErrorContext(ctx, "Event handler failed",
				slog.String("event", ev.Name),
				slog.String("event_id", ev.ID),
				slog.String("aggregate_id", ev.AggregateID),
				slog.String("error", err.Error()))
			metrics.EventsDispatchedTotal.WithLabelValues(ev.Name, "error").Inc()
			return fmt.Errorf("handle %s: %w", ev.Name, err)
		}
	}
	metrics.EventsDispatchedTotal.WithLabelValues(ev.Name, "success").Inc()
	return nil
}
