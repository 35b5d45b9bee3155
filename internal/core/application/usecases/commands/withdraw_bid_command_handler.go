package commands

import (
	"context"
	"fmt"

	"freight/internal/pkg/errs"
)

type WithdrawBidCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewWithdrawBidCommandHandler(uowFactory RequestUoWFactory) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle withdraws the bid if it was placed by the command's transporter.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	bid, err := r.Bid(cmd.BidID())
	if err != nil {
		return err
	}
	if !bid.TransporterID().IsEqual(cmd.TransporterID()) {
		return errs.NewValueIsInvalidErrorWithCause("transporter",
			fmt.Errorf("bid %s was not placed by transporter %s", bid.ID(), cmd.TransporterID()))
	}

	if err = r.WithdrawBid(cmd.BidID()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
