package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateJobAssignmentCommandIsNotConstructed = errors.New(
	"CreateJobAssignmentCommand must be created via NewCreateJobAssignmentCommand constructor",
)

// CreateJobAssignmentCommand binds a vehicle and a driver of the winning transporter to a
// confirmed request.
type CreateJobAssignmentCommand struct {
	requestID kernel.UUID
	vehicleID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateJobAssignmentCommand(requestID, vehicleID, driverID kernel.UUID) (CreateJobAssignmentCommand, error) {
	if err := errors.Join(requestID.Validate(), vehicleID.Validate(), driverID.Validate()); err != nil {
		return CreateJobAssignmentCommand{}, err
	}

	return CreateJobAssignmentCommand{
		requestID: requestID,
		vehicleID: vehicleID,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateJobAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobAssignmentCommandIsNotConstructed)
}

func (c CreateJobAssignmentCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreateJobAssignmentCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateJobAssignmentCommand) DriverID() kernel.UUID {
	return c.driverID
}
