package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
)

// RegisterTransporterCommandHandler creates an unverified transporter profile.
type RegisterTransporterCommandHandler struct {
	uowFactory TransporterUoWFactory
}

func NewRegisterTransporterCommandHandler(uowFactory TransporterUoWFactory) RegisterTransporterCommandHandler {
	return RegisterTransporterCommandHandler{uowFactory: uowFactory}
}

func (h RegisterTransporterCommandHandler) Handle(ctx context.Context, cmd RegisterTransporterCommand) error {
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

	profile, err := transporter.NewTransporterProfile(cmd.TransporterID(), cmd.UserID(), cmd.Details())
	if err != nil {
		return err
	}

	if cmd.ServiceRadiusKm() != 0 {
		if err = profile.ChangeServiceRadius(cmd.ServiceRadiusKm()); err != nil {
			return err
		}
	}

	if err = uow.TransporterRepository().Add(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AddDriverCommandHandler adds an Active driver to a transporter's fleet.
type AddDriverCommandHandler struct {
	uowFactory TransporterUoWFactory
}

func NewAddDriverCommandHandler(uowFactory TransporterUoWFactory) AddDriverCommandHandler {
	return AddDriverCommandHandler{uowFactory: uowFactory}
}

func (h AddDriverCommandHandler) Handle(ctx context.Context, cmd AddDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	driver, err := transporter.NewDriver(cmd.DriverID(), cmd.TransporterID(), cmd.Details())
	if err != nil {
		return err
	}

	return updateProfile(ctx, h.uowFactory, cmd.TransporterID(), func(p *transporter.TransporterProfile) error {
		return p.AddDriver(driver)
	})
}

// AddVehicleCommandHandler adds an Active vehicle to a transporter's fleet.
type AddVehicleCommandHandler struct {
	uowFactory TransporterUoWFactory
}

func NewAddVehicleCommandHandler(uowFactory TransporterUoWFactory) AddVehicleCommandHandler {
	return AddVehicleCommandHandler{uowFactory: uowFactory}
}

func (h AddVehicleCommandHandler) Handle(ctx context.Context, cmd AddVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	vehicle, err := transporter.NewVehicle(cmd.VehicleID(), cmd.TransporterID(), cmd.Details())
	if err != nil {
		return err
	}

	return updateProfile(ctx, h.uowFactory, cmd.TransporterID(), func(p *transporter.TransporterProfile) error {
		return p.AddVehicle(vehicle)
	})
}

// VerifyTransporterCommandHandler marks a transporter as verified.
type VerifyTransporterCommandHandler struct {
	uowFactory TransporterUoWFactory
}

func NewVerifyTransporterCommandHandler(uowFactory TransporterUoWFactory) VerifyTransporterCommandHandler {
	return VerifyTransporterCommandHandler{uowFactory: uowFactory}
}

func (h VerifyTransporterCommandHandler) Handle(ctx context.Context, cmd VerifyTransporterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateProfile(ctx, h.uowFactory, cmd.TransporterID(), func(p *transporter.TransporterProfile) error {
		return p.Verify()
	})
}

// updateProfile loads a profile, applies mutate, and saves it in one transaction.
func updateProfile(
	ctx context.Context,
	uowFactory TransporterUoWFactory,
	id kernel.UUID,
	mutate func(*transporter.TransporterProfile) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transporterRepo := uow.TransporterRepository()
	profile, err := transporterRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = mutate(profile); err != nil {
		return err
	}

	if err = transporterRepo.Update(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
