package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrSubmitBidCommandIsNotConstructed = errors.New(
		"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
	)
	ErrWithdrawBidCommandIsNotConstructed = errors.New(
		"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
	)
)

// SubmitBidCommand places a transporter's offer on a request.
type SubmitBidCommand struct {
	requestID     kernel.UUID
	transporterID kernel.UUID
	amount        kernel.Money
	note          string

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand checks the identifiers and that amount was built by kernel.NewMoney.
// Positivity of the amount is a bid rule and is enforced when the bid is created.
func NewSubmitBidCommand(
	requestID, transporterID kernel.UUID,
	amount kernel.Money,
	note string,
) (SubmitBidCommand, error) {
	if err := errors.Join(requestID.Validate(), transporterID.Validate(), amount.Validate()); err != nil {
		return SubmitBidCommand{}, err
	}

	return SubmitBidCommand{
		requestID:     requestID,
		transporterID: transporterID,
		amount:        amount,
		note:          note,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

func (c SubmitBidCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c SubmitBidCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

func (c SubmitBidCommand) Amount() kernel.Money {
	return c.amount
}

func (c SubmitBidCommand) Note() string {
	return c.note
}

// WithdrawBidCommand withdraws a pending bid on behalf of the transporter that placed it.
type WithdrawBidCommand struct {
	requestID     kernel.UUID
	bidID         kernel.UUID
	transporterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewWithdrawBidCommand(requestID, bidID, transporterID kernel.UUID) (WithdrawBidCommand, error) {
	if err := errors.Join(requestID.Validate(), bidID.Validate(), transporterID.Validate()); err != nil {
		return WithdrawBidCommand{}, err
	}

	return WithdrawBidCommand{
		requestID:     requestID,
		bidID:         bidID,
		transporterID: transporterID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

func (c WithdrawBidCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c WithdrawBidCommand) BidID() kernel.UUID {
	return c.bidID
}

func (c WithdrawBidCommand) TransporterID() kernel.UUID {
	return c.transporterID
}
