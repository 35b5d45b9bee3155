// Package queries contains the read side of the marketplace. Handlers read straight from
// the database into read models and never load aggregates.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetTransportRequestQueryIsNotConstructed = errors.New(
	"GetTransportRequestQuery must be created via NewGetTransportRequestQuery constructor",
)

// GetTransportRequestQuery reads one request with its bids and assignment.
//
// Example:
//
//	query, err := queries.NewGetTransportRequestQuery(requestID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetTransportRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTransportRequestQuery(requestID kernel.UUID) (GetTransportRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetTransportRequestQuery{}, err
	}

	return GetTransportRequestQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetTransportRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetTransportRequestQueryIsNotConstructed)
}

func (q GetTransportRequestQuery) RequestID() kernel.UUID {
	return q.requestID
}

// GetTransportRequestQueryResponse is the request read model. Status values use the
// request.Status and request.BidStatus string forms.
type GetTransportRequestQueryResponse struct {
	ID                  kernel.UUID
	RequesterID         kernel.UUID
	Status              string
	ScheduledTime       time.Time
	Pickup              kernel.Location
	Drop                kernel.Location
	GoodsType           string
	WeightKg            decimal.Decimal
	EstimatedDistanceKm float64
	WinnerBidID         *kernel.UUID
	Bids                []BidView
	Assignment          *AssignmentView
	CreatedAt           time.Time
}

type BidView struct {
	ID            kernel.UUID
	TransporterID kernel.UUID
	Amount        kernel.Money
	Note          string
	BidTime       time.Time
	Status        string
}

type AssignmentView struct {
	ID         kernel.UUID
	VehicleID  kernel.UUID
	DriverID   kernel.UUID
	AssignedAt time.Time
}
