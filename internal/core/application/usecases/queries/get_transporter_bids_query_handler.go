package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetTransporterBidsQueryHandler struct {
	db *gorm.DB
}

func NewGetTransporterBidsQueryHandler(db *gorm.DB) GetTransporterBidsQueryHandler {
	return GetTransporterBidsQueryHandler{db: db}
}

func (h GetTransporterBidsQueryHandler) Handle(
	ctx context.Context,
	query GetTransporterBidsQuery,
) ([]GetTransporterBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.request_id,
			b.amount,
			b.currency,
			b.note,
			b.bid_time,
			b.status,
			r.status,
			r.scheduled_time,
			r.pickup_thana,
			r.drop_thana,
			COALESCE(r.winner_bid_id = b.id, false)
		FROM transport_bids b
		JOIN transport_requests r ON r.id = b.request_id
		WHERE b.transporter_id = ?
		ORDER BY b.bid_time DESC, b.id
	`, query.TransporterID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]GetTransporterBidsQueryResponse, 0)
	for rows.Next() {
		var (
			bid                  GetTransporterBidsQueryResponse
			bidID, requestID     uuid.UUID
			amount               decimal.Decimal
			currency             string
			bidStatus, reqStatus int
		)

		err = rows.Scan(
			&bidID,
			&requestID,
			&amount,
			&currency,
			&bid.Note,
			&bid.BidTime,
			&bidStatus,
			&reqStatus,
			&bid.ScheduledTime,
			&bid.PickupThana,
			&bid.DropThana,
			&bid.IsWinner,
		)
		if err != nil {
			return nil, err
		}

		if bid.BidID, err = kernel.UUIDFromBytes(bidID[:]); err != nil {
			return nil, err
		}
		if bid.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return nil, err
		}
		if bid.Amount, err = kernel.NewMoney(amount, kernel.Currency(currency)); err != nil {
			return nil, err
		}
		bid.Status = request.BidStatus(bidStatus).String()
		bid.RequestStatus = request.Status(reqStatus).String()

		bids = append(bids, bid)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
