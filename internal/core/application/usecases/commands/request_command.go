package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrStartBiddingCommandIsNotConstructed = errors.New(
		"StartBiddingCommand must be created via NewStartBiddingCommand constructor",
	)
	ErrStartTransitCommandIsNotConstructed = errors.New(
		"StartTransitCommand must be created via NewStartTransitCommand constructor",
	)
	ErrAcceptBidCommandIsNotConstructed = errors.New(
		"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
	)
	ErrAllocateBidCommandIsNotConstructed = errors.New(
		"AllocateBidCommand must be created via NewAllocateBidCommand constructor",
	)
	ErrCompleteTransportRequestCommandIsNotConstructed = errors.New(
		"CompleteTransportRequestCommand must be created via NewCompleteTransportRequestCommand constructor",
	)
	ErrCancelTransportRequestCommandIsNotConstructed = errors.New(
		"CancelTransportRequestCommand must be created via NewCancelTransportRequestCommand constructor",
	)
)

// requestCommand carries the target request id shared by the lifecycle commands.
type requestCommand struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func newRequestCommand(requestID kernel.UUID) (requestCommand, error) {
	if err := requestID.Validate(); err != nil {
		return requestCommand{}, err
	}
	return requestCommand{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (c requestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// StartBiddingCommand opens an Open request for bids.
type StartBiddingCommand struct{ requestCommand }

func NewStartBiddingCommand(requestID kernel.UUID) (StartBiddingCommand, error) {
	c, err := newRequestCommand(requestID)
	return StartBiddingCommand{c}, err
}

func (c StartBiddingCommand) Validate() error {
	return c.guard.Validate(ErrStartBiddingCommandIsNotConstructed)
}

// StartTransitCommand records pickup of a confirmed, assigned request.
type StartTransitCommand struct{ requestCommand }

func NewStartTransitCommand(requestID kernel.UUID) (StartTransitCommand, error) {
	c, err := newRequestCommand(requestID)
	return StartTransitCommand{c}, err
}

func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// AllocateBidCommand lets the allocation policy pick the winning bid.
type AllocateBidCommand struct{ requestCommand }

func NewAllocateBidCommand(requestID kernel.UUID) (AllocateBidCommand, error) {
	c, err := newRequestCommand(requestID)
	return AllocateBidCommand{c}, err
}

func (c AllocateBidCommand) Validate() error {
	return c.guard.Validate(ErrAllocateBidCommandIsNotConstructed)
}

// CompleteTransportRequestCommand records delivery and frees the assigned vehicle.
type CompleteTransportRequestCommand struct{ requestCommand }

func NewCompleteTransportRequestCommand(requestID kernel.UUID) (CompleteTransportRequestCommand, error) {
	c, err := newRequestCommand(requestID)
	return CompleteTransportRequestCommand{c}, err
}

func (c CompleteTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTransportRequestCommandIsNotConstructed)
}

// CancelTransportRequestCommand cancels a request that has not been picked up yet.
type CancelTransportRequestCommand struct{ requestCommand }

func NewCancelTransportRequestCommand(requestID kernel.UUID) (CancelTransportRequestCommand, error) {
	c, err := newRequestCommand(requestID)
	return CancelTransportRequestCommand{c}, err
}

func (c CancelTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelTransportRequestCommandIsNotConstructed)
}

// AcceptBidCommand makes one bid the winner of a request.
type AcceptBidCommand struct {
	requestCommand
	bidID kernel.UUID
}

func NewAcceptBidCommand(requestID, bidID kernel.UUID) (AcceptBidCommand, error) {
	c, err := newRequestCommand(requestID)
	if err = errors.Join(err, bidID.Validate()); err != nil {
		return AcceptBidCommand{}, err
	}
	return AcceptBidCommand{requestCommand: c, bidID: bidID}, nil
}

func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}
