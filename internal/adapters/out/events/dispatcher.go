// Package events delivers committed domain events to in-process subscribers.
//
// Command handlers publish through ports.EventPublisher once their transaction has
// committed. Dispatcher fans each event out to the handlers subscribed to its type and to
// the catch-all handlers:
//
//	dispatcher := events.NewDispatcher(logger)
//	dispatcher.SubscribeAll(events.NewLogSubscriber(logger))
//	dispatcher.Subscribe(request.EventBidAccepted, notifyTransporter)
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Handler reacts to a single event. A failing handler does not stop delivery to the others.
type Handler func(ctx context.Context, event kernel.DomainEvent) error

type Dispatcher struct {
	mu       sync.RWMutex
	byType   map[string][]Handler
	catchAll []Handler
	logger   *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		byType: make(map[string][]Handler),
		logger: logger.With("component", "event_dispatcher"),
	}
}

// Subscribe registers h for events whose EventType equals eventType.
func (d *Dispatcher) Subscribe(eventType string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.byType[eventType] = append(d.byType[eventType], h)
}

// SubscribeAll registers h for every event.
func (d *Dispatcher) SubscribeAll(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.catchAll = append(d.catchAll, h)
}

// Publish delivers events in order, synchronously. Handler failures are logged and
// returned joined; delivery continues past them. A cancelled context stops delivery and
// is logged as well, so callers that have already committed may ignore the result.
func (d *Dispatcher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var failures []error

	for _, event := range events {
		if event == nil {
			continue
		}

		for _, h := range d.handlersFor(event.EventType()) {
			if err := ctx.Err(); err != nil {
				d.logger.WarnContext(ctx, "Event delivery interrupted",
					"event_type", event.EventType(),
					"aggregate_id", event.AggregateID().String(),
					"error", err,
				)
				return errors.Join(append(failures, err)...)
			}

			if err := h(ctx, event); err != nil {
				d.logger.ErrorContext(ctx, "Event handler failed",
					"event_type", event.EventType(),
					"aggregate_id", event.AggregateID().String(),
					"error", err,
				)
				failures = append(failures, fmt.Errorf("%s: %w", event.EventType(), err))
			}
		}
	}

	return errors.Join(failures...)
}

func (d *Dispatcher) handlersFor(eventType string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	handlers := make([]Handler, 0, len(d.byType[eventType])+len(d.catchAll))
	handlers = append(handlers, d.byType[eventType]...)
	return append(handlers, d.catchAll...)
}

// NewLogSubscriber returns a Handler that writes every event to logger at info level.
func NewLogSubscriber(logger *slog.Logger) Handler {
	logger = logger.With("component", "domain_events")

	return func(ctx context.Context, event kernel.DomainEvent) error {
		logger.InfoContext(ctx, "Domain event",
			"event_type", event.EventType(),
			"aggregate_id", event.AggregateID().String(),
			"occurred_at", event.OccurredAt(),
		)
		return nil
	}
}
