package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// EventPublisher hands committed domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
