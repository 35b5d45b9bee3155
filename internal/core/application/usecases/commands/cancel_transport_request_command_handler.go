package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// CancelTransportRequestCommandHandler cancels a request. If a vehicle had been
// dispatched for it, the vehicle is released in the same transaction.
type CancelTransportRequestCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewCancelTransportRequestCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) CancelTransportRequestCommandHandler {
	return CancelTransportRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h CancelTransportRequestCommandHandler) Handle(ctx context.Context, cmd CancelTransportRequestCommand) error {
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

	winner := r.WinningBid()
	cancelled, err := r.Cancel(h.clock.Now())
	if err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return err
	}

	if cancelled.ReleasedVehicleID != nil && winner != nil {
		transporterRepo := uow.TransporterRepository()

		profile, getErr := transporterRepo.Get(ctx, winner.TransporterID())
		if getErr != nil {
			return getErr
		}
		if err = profile.ReleaseVehicle(*cancelled.ReleasedVehicleID); err != nil {
			return err
		}
		if err = transporterRepo.Update(ctx, profile); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.publisher, cancelled)
	return nil
}
