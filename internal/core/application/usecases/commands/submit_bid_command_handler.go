package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// SubmitBidCommandHandler adds a bid from a verified transporter to a request and
// publishes BidSubmitted after commit.
type SubmitBidCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewSubmitBidCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the id of the new bid.
func (h SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	transporterRepo := uow.TransporterRepository()

	profile, err := transporterRepo.Get(ctx, cmd.TransporterID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !profile.IsVerified() {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("transporter",
			fmt.Errorf("transporter %s is not verified", profile.ID()))
	}

	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return kernel.UUID{}, err
	}

	bid, submitted, err := r.SubmitBid(cmd.TransporterID(), cmd.Amount(), cmd.Note(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	publish(ctx, h.publisher, submitted)
	return bid.ID(), nil
}
