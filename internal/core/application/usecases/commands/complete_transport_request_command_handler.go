package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// CompleteTransportRequestCommandHandler records delivery, returns the vehicle to the
// transporter's pool, and counts the completed job on the transporter profile.
type CompleteTransportRequestCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewCompleteTransportRequestCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) CompleteTransportRequestCommandHandler {
	return CompleteTransportRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h CompleteTransportRequestCommandHandler) Handle(ctx context.Context, cmd CompleteTransportRequestCommand) error {
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
	transporterRepo := uow.TransporterRepository()

	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	completed, err := r.Complete(h.clock.Now())
	if err != nil {
		return err
	}

	// InTransit always carries a winner and an assignment
	winner, assignment := r.WinningBid(), r.Assignment()
	profile, err := transporterRepo.Get(ctx, winner.TransporterID())
	if err != nil {
		return err
	}

	if err = profile.ReleaseVehicle(assignment.VehicleID()); err != nil {
		return err
	}
	profile.RecordCompletedJob()

	if err = requestRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = transporterRepo.Update(ctx, profile); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.publisher, completed)
	return nil
}
