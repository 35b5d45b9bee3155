package request

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

const (
	EventRequestCreated   = "transport_request.created"
	EventBidSubmitted     = "transport_request.bid_submitted"
	EventBidAccepted      = "transport_request.bid_accepted"
	EventRequestCompleted = "transport_request.completed"
	EventRequestCancelled = "transport_request.cancelled"
)

var (
	_ kernel.DomainEvent = RequestCreated{}
	_ kernel.DomainEvent = BidSubmitted{}
	_ kernel.DomainEvent = BidAccepted{}
	_ kernel.DomainEvent = RequestCompleted{}
	_ kernel.DomainEvent = RequestCancelled{}
)

type RequestCreated struct {
	RequestID      kernel.UUID
	RequesterID    kernel.UUID
	PickupLocation kernel.Location
	At             time.Time
}

func (e RequestCreated) EventType() string        { return EventRequestCreated }
func (e RequestCreated) AggregateID() kernel.UUID { return e.RequestID }
func (e RequestCreated) OccurredAt() time.Time    { return e.At }

type BidSubmitted struct {
	RequestID     kernel.UUID
	BidID         kernel.UUID
	TransporterID kernel.UUID
	Amount        kernel.Money
	At            time.Time
}

func (e BidSubmitted) EventType() string        { return EventBidSubmitted }
func (e BidSubmitted) AggregateID() kernel.UUID { return e.RequestID }
func (e BidSubmitted) OccurredAt() time.Time    { return e.At }

type BidAccepted struct {
	RequestID     kernel.UUID
	BidID         kernel.UUID
	TransporterID kernel.UUID
	Amount        kernel.Money
	At            time.Time
}

func (e BidAccepted) EventType() string        { return EventBidAccepted }
func (e BidAccepted) AggregateID() kernel.UUID { return e.RequestID }
func (e BidAccepted) OccurredAt() time.Time    { return e.At }

type RequestCompleted struct {
	RequestID kernel.UUID
	At        time.Time
}

func (e RequestCompleted) EventType() string        { return EventRequestCompleted }
func (e RequestCompleted) AggregateID() kernel.UUID { return e.RequestID }
func (e RequestCompleted) OccurredAt() time.Time    { return e.At }

// RequestCancelled carries the vehicle and driver released by the cancellation, if the
// request had a job assignment.
type RequestCancelled struct {
	RequestID         kernel.UUID
	PreviousStatus    Status
	ReleasedVehicleID *kernel.UUID
	ReleasedDriverID  *kernel.UUID
	At                time.Time
}

func (e RequestCancelled) EventType() string        { return EventRequestCancelled }
func (e RequestCancelled) AggregateID() kernel.UUID { return e.RequestID }
func (e RequestCancelled) OccurredAt() time.Time    { return e.At }
