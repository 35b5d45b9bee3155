package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// AcceptBidCommandHandler confirms a request with the chosen bid.
//
// When the request changed between load and save, the handler reloads it once and
// accepts again. Of two handlers racing on one request, the loser therefore reads the
// Confirmed request and gets errs.InvalidStateError.
type AcceptBidCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewAcceptBidCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	accepted, err := h.accept(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		accepted, err = h.accept(ctx, cmd)
	}
	if err != nil {
		return err
	}

	publish(ctx, h.publisher, accepted)
	return nil
}

func (h AcceptBidCommandHandler) accept(ctx context.Context, cmd AcceptBidCommand) (request.BidAccepted, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return request.BidAccepted{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return request.BidAccepted{}, err
	}

	accepted, err := r.AcceptBid(cmd.BidID(), h.clock.Now())
	if err != nil {
		return request.BidAccepted{}, err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return request.BidAccepted{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return request.BidAccepted{}, err
	}

	return accepted, nil
}
