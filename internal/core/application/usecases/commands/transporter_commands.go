package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/guard"
)

var (
	ErrRegisterTransporterCommandIsNotConstructed = errors.New(
		"RegisterTransporterCommand must be created via NewRegisterTransporterCommand constructor",
	)
	ErrAddDriverCommandIsNotConstructed = errors.New(
		"AddDriverCommand must be created via NewAddDriverCommand constructor",
	)
	ErrAddVehicleCommandIsNotConstructed = errors.New(
		"AddVehicleCommand must be created via NewAddVehicleCommand constructor",
	)
	ErrVerifyTransporterCommandIsNotConstructed = errors.New(
		"VerifyTransporterCommand must be created via NewVerifyTransporterCommand constructor",
	)
)

// RegisterTransporterCommand onboards a transporter profile. A zero service radius keeps
// transporter.DefaultServiceRadiusKm.
type RegisterTransporterCommand struct {
	transporterID   kernel.UUID
	userID          kernel.UUID
	details         transporter.ProfileDetails
	serviceRadiusKm float64

	guard guard.ConstructorGuard
}

func NewRegisterTransporterCommand(
	transporterID, userID kernel.UUID,
	details transporter.ProfileDetails,
	serviceRadiusKm float64,
) (RegisterTransporterCommand, error) {
	if err := errors.Join(transporterID.Validate(), userID.Validate()); err != nil {
		return RegisterTransporterCommand{}, err
	}

	return RegisterTransporterCommand{
		transporterID:   transporterID,
		userID:          userID,
		details:         details,
		serviceRadiusKm: serviceRadiusKm,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterTransporterCommand) Validate() error {
	return c.guard.Validate(ErrRegisterTransporterCommandIsNotConstructed)
}

func (c RegisterTransporterCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

func (c RegisterTransporterCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterTransporterCommand) Details() transporter.ProfileDetails {
	return c.details
}

func (c RegisterTransporterCommand) ServiceRadiusKm() float64 {
	return c.serviceRadiusKm
}

// AddDriverCommand registers a driver in a transporter's fleet.
type AddDriverCommand struct {
	transporterID kernel.UUID
	driverID      kernel.UUID
	details       transporter.DriverDetails

	guard guard.ConstructorGuard
}

func NewAddDriverCommand(transporterID, driverID kernel.UUID, details transporter.DriverDetails) (AddDriverCommand, error) {
	if err := errors.Join(transporterID.Validate(), driverID.Validate()); err != nil {
		return AddDriverCommand{}, err
	}

	return AddDriverCommand{
		transporterID: transporterID,
		driverID:      driverID,
		details:       details,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddDriverCommand) Validate() error {
	return c.guard.Validate(ErrAddDriverCommandIsNotConstructed)
}

func (c AddDriverCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

func (c AddDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AddDriverCommand) Details() transporter.DriverDetails {
	return c.details
}

// AddVehicleCommand registers a vehicle in a transporter's fleet.
type AddVehicleCommand struct {
	transporterID kernel.UUID
	vehicleID     kernel.UUID
	details       transporter.VehicleDetails

	guard guard.ConstructorGuard
}

func NewAddVehicleCommand(transporterID, vehicleID kernel.UUID, details transporter.VehicleDetails) (AddVehicleCommand, error) {
	if err := errors.Join(transporterID.Validate(), vehicleID.Validate()); err != nil {
		return AddVehicleCommand{}, err
	}

	return AddVehicleCommand{
		transporterID: transporterID,
		vehicleID:     vehicleID,
		details:       details,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

func (c AddVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c AddVehicleCommand) Details() transporter.VehicleDetails {
	return c.details
}

// VerifyTransporterCommand marks a transporter as verified by an administrator.
type VerifyTransporterCommand struct {
	transporterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewVerifyTransporterCommand(transporterID kernel.UUID) (VerifyTransporterCommand, error) {
	if err := transporterID.Validate(); err != nil {
		return VerifyTransporterCommand{}, err
	}

	return VerifyTransporterCommand{
		transporterID: transporterID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyTransporterCommand) Validate() error {
	return c.guard.Validate(ErrVerifyTransporterCommandIsNotConstructed)
}

func (c VerifyTransporterCommand) TransporterID() kernel.UUID {
	return c.transporterID
}
