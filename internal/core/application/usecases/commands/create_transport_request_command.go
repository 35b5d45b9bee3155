package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/guard"
)

var ErrCreateTransportRequestCommandIsNotConstructed = errors.New(
	"CreateTransportRequestCommand must be created via NewCreateTransportRequestCommand constructor",
)

// CreateTransportRequestCommand posts a new shipment. The details are validated by the
// TransportRequest factory when the command is handled, against the clock of that moment.
//
// Example:
//
//	cmd, err := NewCreateTransportRequestCommand(kernel.NewUUID(), requesterID, request.Details{
//	    ScheduledTime: time.Now().Add(48 * time.Hour),
//	    Pickup:        pickup,
//	    Drop:          drop,
//	    GoodsType:     "garments",
//	    WeightKg:      decimal.NewFromInt(2000),
//	})
type CreateTransportRequestCommand struct {
	requestID   kernel.UUID
	requesterID kernel.UUID
	details     request.Details

	guard guard.ConstructorGuard
}

func NewCreateTransportRequestCommand(
	requestID, requesterID kernel.UUID,
	details request.Details,
) (CreateTransportRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), requesterID.Validate()); err != nil {
		return CreateTransportRequestCommand{}, err
	}

	return CreateTransportRequestCommand{
		requestID:   requestID,
		requesterID: requesterID,
		details:     details,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransportRequestCommandIsNotConstructed)
}

func (c CreateTransportRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreateTransportRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c CreateTransportRequestCommand) Details() request.Details {
	return c.details
}
