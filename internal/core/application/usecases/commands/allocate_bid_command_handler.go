package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// AllocateBidCommandHandler accepts the bid chosen by services.BidAllocator. A version
// conflict on save is retried once against the reloaded request, the same way
// AcceptBidCommandHandler does.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrEligibleBidNotFound):
//	    // keep waiting for bids
//	case err != nil:
//	    return err
//	}
type AllocateBidCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewAllocateBidCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) AllocateBidCommandHandler {
	return AllocateBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the id of the accepted bid.
func (h AllocateBidCommandHandler) Handle(ctx context.Context, cmd AllocateBidCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	winner, accepted, err := h.allocate(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		winner, accepted, err = h.allocate(ctx, cmd)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	publish(ctx, h.publisher, accepted)
	return winner.ID(), nil
}

func (h AllocateBidCommandHandler) allocate(
	ctx context.Context,
	cmd AllocateBidCommand,
) (*request.TransportBid, request.BidAccepted, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, request.BidAccepted{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	transporterRepo := uow.TransporterRepository()

	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, request.BidAccepted{}, err
	}

	var bidders []kernel.UUID
	for _, bid := range r.Bids() {
		if bid.IsPending() {
			bidders = append(bidders, bid.TransporterID())
		}
	}

	profiles, err := transporterRepo.GetMany(ctx, bidders)
	if err != nil {
		return nil, request.BidAccepted{}, err
	}

	winner, accepted, err := services.NewBidAllocator().Allocate(r, profiles, h.clock.Now())
	if err != nil {
		return nil, request.BidAccepted{}, err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return nil, request.BidAccepted{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, request.BidAccepted{}, err
	}

	return winner, accepted, nil
}
