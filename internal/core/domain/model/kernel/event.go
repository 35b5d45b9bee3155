package kernel

import "time"

// DomainEvent is an immutable fact emitted by an aggregate. Aggregates return events as
// values from their mutating methods; the application layer publishes them once the
// enclosing transaction has committed.
type DomainEvent interface {
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}
