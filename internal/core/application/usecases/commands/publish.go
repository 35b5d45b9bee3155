package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// publish hands committed events to the publisher. The state change is already durable,
// so a delivery failure is reported by the publisher and does not fail the command.
func publish(ctx context.Context, publisher ports.EventPublisher, events ...kernel.DomainEvent) {
	_ = publisher.Publish(ctx, events...)
}
