package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"

	"github.com/labstack/echo/v4"
)

// RegisterTransporter handles POST /api/v1/transporters.
func (s *Server) RegisterTransporter(ctx echo.Context) error {
	var body NewTransporter
	if err := s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	userID, err := parseUUID("userId", body.UserID)
	if err != nil {
		return s.fail(ctx, err)
	}

	transporterType, typeErr := transporter.ParseTransporterType(body.Type)
	baseLocation, locErr := body.BaseLocation.toDomain()
	if err = errors.Join(typeErr, locErr); err != nil {
		return s.fail(ctx, err)
	}

	transporterID := kernel.NewUUID()
	cmd, err := commands.NewRegisterTransporterCommand(transporterID, userID, transporter.ProfileDetails{
		DisplayName:        body.DisplayName,
		ContactNumber:      body.ContactNumber,
		Type:               transporterType,
		TradeLicenseNumber: body.TradeLicenseNumber,
		BaseLocation:       baseLocation,
	}, body.ServiceRadiusKm)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RegisterTransporter.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: transporterID.String()})
}

// VerifyTransporter handles POST /api/v1/transporters/:id/verify.
func (s *Server) VerifyTransporter(ctx echo.Context) error {
	transporterID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewVerifyTransporterCommand(transporterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.VerifyTransporter.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddDriver handles POST /api/v1/transporters/:id/drivers.
func (s *Server) AddDriver(ctx echo.Context) error {
	transporterID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewDriver
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewAddDriverCommand(transporterID, driverID, transporter.DriverDetails{
		FullName:           body.FullName,
		Phone:              body.Phone,
		LicenseNumber:      body.LicenseNumber,
		LicenseExpiry:      body.LicenseExpiry,
		LicenseDocumentRef: body.LicenseDocumentRef,
		NIDNumber:          body.NIDNumber,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AddDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: driverID.String()})
}

// AddVehicle handles POST /api/v1/transporters/:id/vehicles.
func (s *Server) AddVehicle(ctx echo.Context) error {
	transporterID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewVehicle
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	vehicleType, err := transporter.ParseVehicleType(body.Type)
	if err != nil {
		return s.fail(ctx, err)
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewAddVehicleCommand(transporterID, vehicleID, transporter.VehicleDetails{
		RegistrationNumber: body.RegistrationNumber,
		Type:               vehicleType,
		CapacityTon:        body.CapacityTon,
		FitnessExpiry:      body.FitnessExpiry,
		DocumentRefs:       body.DocumentRefs,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AddVehicle.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: vehicleID.String()})
}

// GetTransporterBids handles GET /api/v1/transporters/:id/bids.
func (s *Server) GetTransporterBids(ctx echo.Context) error {
	transporterID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetTransporterBidsQuery(transporterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	bids, err := s.handlers.GetTransporterBids.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]TransporterBid, len(bids))
	for i, b := range bids {
		response[i] = TransporterBid{
			BidID:         b.BidID.String(),
			RequestID:     b.RequestID.String(),
			Amount:        b.Amount.Amount(),
			Currency:      string(b.Amount.Currency()),
			Note:          b.Note,
			BidTime:       b.BidTime,
			Status:        b.Status,
			RequestStatus: b.RequestStatus,
			ScheduledTime: b.ScheduledTime,
			PickupThana:   b.PickupThana,
			DropThana:     b.DropThana,
			IsWinner:      b.IsWinner,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
