package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// searchLabel fills the address fields of the point a nearby search is centred on.
// Only its coordinates take part in the search.
const searchLabel = "search point"

// CreateTransportRequest handles POST /api/v1/requests.
func (s *Server) CreateTransportRequest(ctx echo.Context) error {
	var body NewTransportRequest
	if err := s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	requesterID, err := parseUUID("requesterId", body.RequesterID)
	if err != nil {
		return s.fail(ctx, err)
	}
	pickup, err := body.Pickup.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}
	drop, err := body.Drop.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateTransportRequestCommand(requestID, requesterID, request.Details{
		ScheduledTime: body.ScheduledTime,
		Pickup:        pickup,
		Drop:          drop,
		GoodsType:     body.GoodsType,
		WeightKg:      body.WeightKg,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateTransportRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: requestID.String()})
}

// GetTransportRequest handles GET /api/v1/requests/:id.
func (s *Server) GetTransportRequest(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetTransportRequestQuery(requestID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetTransportRequest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transportRequestFromView(view))
}

// GetNearbyOpenRequests handles GET /api/v1/requests/nearby?lat=&lng=&radiusKm=.
func (s *Server) GetNearbyOpenRequests(ctx echo.Context) error {
	var lat, lng, radiusKm float64
	if err := echo.QueryParamsBinder(ctx).
		MustFloat64("lat", &lat).
		MustFloat64("lng", &lng).
		MustFloat64("radiusKm", &radiusKm).
		BindError(); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("query", err))
	}

	center, err := kernel.NewLocation(lat, lng, searchLabel, searchLabel, searchLabel, "", searchLabel)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetNearbyOpenRequestsQuery(center, radiusKm)
	if err != nil {
		return s.fail(ctx, err)
	}

	nearby, err := s.handlers.GetNearbyOpenRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]NearbyRequest, len(nearby))
	for i, r := range nearby {
		response[i] = NearbyRequest{
			ID:            r.ID.String(),
			Status:        r.Status,
			ScheduledTime: r.ScheduledTime,
			Pickup:        locationFromDomain(r.Pickup),
			Drop:          locationFromDomain(r.Drop),
			GoodsType:     r.GoodsType,
			WeightKg:      r.WeightKg,
			BidCount:      r.BidCount,
			DistanceKm:    r.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartBidding handles POST /api/v1/requests/:id/bidding.
func (s *Server) StartBidding(ctx echo.Context) error {
	return s.lifecycle(ctx, func(requestID kernel.UUID) error {
		cmd, err := commands.NewStartBiddingCommand(requestID)
		if err != nil {
			return err
		}
		return s.handlers.StartBidding.Handle(ctx.Request().Context(), cmd)
	})
}

// SubmitBid handles POST /api/v1/requests/:id/bids.
func (s *Server) SubmitBid(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewBid
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	transporterID, err := parseUUID("transporterId", body.TransporterID)
	if err != nil {
		return s.fail(ctx, err)
	}
	amount, err := kernel.NewMoney(body.Amount, kernel.CurrencyBDT)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitBidCommand(requestID, transporterID, amount, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	bidID, err := s.handlers.SubmitBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: bidID.String()})
}

// WithdrawBid handles POST /api/v1/requests/:id/bids/:bidId/withdraw.
func (s *Server) WithdrawBid(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	bidID, err := pathUUID(ctx, "bidId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var body BidWithdrawal
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	transporterID, err := parseUUID("transporterId", body.TransporterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewWithdrawBidCommand(requestID, bidID, transporterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.WithdrawBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptBid handles POST /api/v1/requests/:id/bids/:bidId/accept.
func (s *Server) AcceptBid(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	bidID, err := pathUUID(ctx, "bidId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcceptBidCommand(requestID, bidID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AcceptBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateBid handles POST /api/v1/requests/:id/allocate and answers with the winning bid id.
func (s *Server) AllocateBid(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAllocateBidCommand(requestID)
	if err != nil {
		return s.fail(ctx, err)
	}

	bidID, err := s.handlers.AllocateBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Created{ID: bidID.String()})
}

// CreateJobAssignment handles POST /api/v1/requests/:id/assignment.
func (s *Server) CreateJobAssignment(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewAssignment
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	vehicleID, err := parseUUID("vehicleId", body.VehicleID)
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := parseUUID("driverId", body.DriverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateJobAssignmentCommand(requestID, vehicleID, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	assignmentID, err := s.handlers.CreateJobAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: assignmentID.String()})
}

// StartTransit handles POST /api/v1/requests/:id/transit.
func (s *Server) StartTransit(ctx echo.Context) error {
	return s.lifecycle(ctx, func(requestID kernel.UUID) error {
		cmd, err := commands.NewStartTransitCommand(requestID)
		if err != nil {
			return err
		}
		return s.handlers.StartTransit.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteTransportRequest handles POST /api/v1/requests/:id/complete.
func (s *Server) CompleteTransportRequest(ctx echo.Context) error {
	return s.lifecycle(ctx, func(requestID kernel.UUID) error {
		cmd, err := commands.NewCompleteTransportRequestCommand(requestID)
		if err != nil {
			return err
		}
		return s.handlers.CompleteTransportRequest.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelTransportRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelTransportRequest(ctx echo.Context) error {
	return s.lifecycle(ctx, func(requestID kernel.UUID) error {
		cmd, err := commands.NewCancelTransportRequestCommand(requestID)
		if err != nil {
			return err
		}
		return s.handlers.CancelTransportRequest.Handle(ctx.Request().Context(), cmd)
	})
}

// lifecycle runs a body-less state transition on the request named by the :id parameter.
func (s *Server) lifecycle(ctx echo.Context, run func(requestID kernel.UUID) error) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = run(requestID); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
