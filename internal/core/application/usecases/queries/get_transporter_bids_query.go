package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetTransporterBidsQueryIsNotConstructed = errors.New(
	"GetTransporterBidsQuery must be created via NewGetTransporterBidsQuery constructor",
)

// GetTransporterBidsQuery lists every bid a transporter has placed, newest first.
type GetTransporterBidsQuery struct {
	transporterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTransporterBidsQuery(transporterID kernel.UUID) (GetTransporterBidsQuery, error) {
	if err := transporterID.Validate(); err != nil {
		return GetTransporterBidsQuery{}, err
	}

	return GetTransporterBidsQuery{
		transporterID: transporterID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetTransporterBidsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransporterBidsQueryIsNotConstructed)
}

func (q GetTransporterBidsQuery) TransporterID() kernel.UUID {
	return q.transporterID
}

type GetTransporterBidsQueryResponse struct {
	BidID         kernel.UUID
	RequestID     kernel.UUID
	Amount        kernel.Money
	Note          string
	BidTime       time.Time
	Status        string
	RequestStatus string
	ScheduledTime time.Time
	PickupThana   string
	DropThana     string
	IsWinner      bool
}
