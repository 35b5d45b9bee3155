package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
)

// CreateJobAssignmentCommandHandler binds a vehicle and driver of the winning
// transporter to a confirmed request and dispatches the vehicle.
//
// Availability is re-checked against the clock inside NewJobAssignment. Two concurrent
// assignments of the same vehicle or driver are serialized by the transporter profile
// version and by the active-assignment unique constraints in storage; the loser receives
// a retryable errs.ResourceUnavailableError.
type CreateJobAssignmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateJobAssignmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateJobAssignmentCommandHandler {
	return CreateJobAssignmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the id of the new assignment.
func (h CreateJobAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateJobAssignmentCommand) (kernel.UUID, error) {
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

	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return kernel.UUID{}, err
	}

	winner := r.WinningBid()
	if winner == nil {
		return kernel.UUID{}, errs.NewInvalidStateError("transport request", r.Status().String(), request.Confirmed.String())
	}

	profile, err := transporterRepo.Get(ctx, winner.TransporterID())
	if err != nil {
		return kernel.UUID{}, err
	}

	vehicle, err := profile.Vehicle(cmd.VehicleID())
	if err != nil {
		return kernel.UUID{}, err
	}
	driver, err := profile.Driver(cmd.DriverID())
	if err != nil {
		return kernel.UUID{}, err
	}

	assignment, err := request.NewJobAssignment(r.ID(), cmd.VehicleID(), cmd.DriverID(), vehicle, driver, r, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = r.AssignJob(assignment); err != nil {
		return kernel.UUID{}, err
	}

	if err = profile.DispatchVehicle(cmd.VehicleID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = transporterRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return kernel.UUID{}, errs.NewResourceUnavailableErrorWithCause(
				"vehicle", cmd.VehicleID().String(), "fleet was changed by a concurrent assignment", err)
		}
		return kernel.UUID{}, err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return assignment.ID(), nil
}
