package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetTransportRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetTransportRequestQueryHandler(db *gorm.DB) GetTransportRequestQueryHandler {
	return GetTransportRequestQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the request does not exist. Bids are
// ordered by bid time.
func (h GetTransportRequestQueryHandler) Handle(
	ctx context.Context,
	query GetTransportRequestQuery,
) (GetTransportRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.RequestID().Bytes()

	row := db.Raw(`
		SELECT
			r.id,
			r.requester_id,
			r.status,
			r.scheduled_time,
			r.pickup_latitude, r.pickup_longitude, r.pickup_division, r.pickup_district,
			r.pickup_thana, r.pickup_postal_code, r.pickup_address,
			r.drop_latitude, r.drop_longitude, r.drop_division, r.drop_district,
			r.drop_thana, r.drop_postal_code, r.drop_address,
			r.goods_type,
			r.weight_kg,
			r.winner_bid_id,
			r.created_at,
			a.id,
			a.vehicle_id,
			a.driver_id,
			a.assigned_at
		FROM transport_requests r
		LEFT JOIN job_assignments a ON a.request_id = r.id
		WHERE r.id = ?
	`, id).Row()

	var (
		resp                   GetTransportRequestQueryResponse
		requestID, requesterID uuid.UUID
		status                 int
		pickup, drop           locationColumns
		winnerBidID            *uuid.UUID
		assignmentID           *uuid.UUID
		vehicleID, driverID    *uuid.UUID
		assignedAt             sql.NullTime
	)

	err := row.Scan(
		&requestID,
		&requesterID,
		&status,
		&resp.ScheduledTime,
		&pickup.latitude, &pickup.longitude, &pickup.division, &pickup.district,
		&pickup.thana, &pickup.postalCode, &pickup.address,
		&drop.latitude, &drop.longitude, &drop.division, &drop.district,
		&drop.thana, &drop.postalCode, &drop.address,
		&resp.GoodsType,
		&resp.WeightKg,
		&winnerBidID,
		&resp.CreatedAt,
		&assignmentID,
		&vehicleID,
		&driverID,
		&assignedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetTransportRequestQueryResponse{}, errs.NewObjectNotFoundError("transport request", query.RequestID().String())
		}
		return GetTransportRequestQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}
	if resp.RequesterID, err = kernel.UUIDFromBytes(requesterID[:]); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}
	resp.Status = request.Status(status).String()

	if resp.Pickup, err = pickup.toLocation(); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}
	if resp.Drop, err = drop.toLocation(); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}
	if resp.EstimatedDistanceKm, err = resp.Pickup.DistanceKm(resp.Drop); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}

	if resp.WinnerBidID, err = optionalUUID(winnerBidID); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}

	if assignmentID != nil && vehicleID != nil && driverID != nil {
		view := AssignmentView{AssignedAt: assignedAt.Time}
		if view.ID, err = kernel.UUIDFromBytes(assignmentID[:]); err != nil {
			return GetTransportRequestQueryResponse{}, err
		}
		if view.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
			return GetTransportRequestQueryResponse{}, err
		}
		if view.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return GetTransportRequestQueryResponse{}, err
		}
		resp.Assignment = &view
	}

	if resp.Bids, err = h.bids(db, id); err != nil {
		return GetTransportRequestQueryResponse{}, err
	}

	return resp, nil
}

func (h GetTransportRequestQueryHandler) bids(db *gorm.DB, requestID uuid.UUID) ([]BidView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			transporter_id,
			amount,
			currency,
			note,
			bid_time,
			status
		FROM transport_bids
		WHERE request_id = ?
		ORDER BY bid_time, id
	`, requestID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]BidView, 0)
	for rows.Next() {
		var (
			bid                  BidView
			bidID, transporterID uuid.UUID
			amount               decimal.Decimal
			currency             string
			status               int
		)

		if err = rows.Scan(&bidID, &transporterID, &amount, &currency, &bid.Note, &bid.BidTime, &status); err != nil {
			return nil, err
		}

		if bid.ID, err = kernel.UUIDFromBytes(bidID[:]); err != nil {
			return nil, err
		}
		if bid.TransporterID, err = kernel.UUIDFromBytes(transporterID[:]); err != nil {
			return nil, err
		}
		if bid.Amount, err = kernel.NewMoney(amount, kernel.Currency(currency)); err != nil {
			return nil, err
		}
		bid.Status = request.BidStatus(status).String()
		bids = append(bids, bid)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
