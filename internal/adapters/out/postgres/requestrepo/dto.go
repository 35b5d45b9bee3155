package requestrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransportRequestDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RequesterID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ScheduledTime time.Time         `gorm:"not null;index"`
	Pickup        LocationDTO       `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop          LocationDTO       `gorm:"embedded;embeddedPrefix:drop_"`
	GoodsType     string            `gorm:"type:varchar(255);not null"`
	WeightKg      decimal.Decimal   `gorm:"type:numeric(12,3);not null"`
	Status        int               `gorm:"type:smallint;not null;index"`
	WinnerBidID   *uuid.UUID        `gorm:"type:uuid"`
	CreatedAt     time.Time         `gorm:"not null"`
	Version       int               `gorm:"not null"`
	Bids          []TransportBidDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Assignment    *JobAssignmentDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (TransportRequestDTO) TableName() string {
	return "transport_requests"
}

type LocationDTO struct {
	Latitude   float64 `gorm:"type:double precision;not null"`
	Longitude  float64 `gorm:"type:double precision;not null"`
	Division   string  `gorm:"type:varchar(64);not null"`
	District   string  `gorm:"type:varchar(64);not null"`
	Thana      string  `gorm:"type:varchar(64);not null"`
	PostalCode string  `gorm:"type:varchar(16)"`
	Address    string  `gorm:"type:varchar(255);not null"`
}

type TransportBidDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransporterID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency      string          `gorm:"type:char(3);not null"`
	Note          string          `gorm:"type:varchar(500)"`
	BidTime       time.Time       `gorm:"not null"`
	Status        int             `gorm:"type:smallint;not null"`
}

func (TransportBidDTO) TableName() string {
	return "transport_bids"
}

// JobAssignmentDTO is the single assignment row of a request. Active stays true until the
// request completes; the partial unique indexes created by postgres.Migrate only consider
// active rows.
type JobAssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt time.Time `gorm:"not null"`
	Active     bool      `gorm:"not null"`
}

func (JobAssignmentDTO) TableName() string {
	return "job_assignments"
}

func fromDomain(r *request.TransportRequest) TransportRequestDTO {
	requestID := r.ID().Bytes()

	var winnerBidID *uuid.UUID
	if id := r.WinnerBidID(); id != nil {
		raw := id.Bytes()
		winnerBidID = &raw
	}

	bids := make([]TransportBidDTO, 0, len(r.Bids()))
	for _, b := range r.Bids() {
		bids = append(bids, bidFromDomain(b))
	}

	var assignment *JobAssignmentDTO
	if a := r.Assignment(); a != nil {
		assignment = &JobAssignmentDTO{
			ID:         a.ID().Bytes(),
			RequestID:  requestID,
			VehicleID:  a.VehicleID().Bytes(),
			DriverID:   a.DriverID().Bytes(),
			AssignedAt: a.AssignedAt(),
			Active:     r.Status() != request.Completed,
		}
	}

	return TransportRequestDTO{
		ID:            requestID,
		RequesterID:   r.RequesterID().Bytes(),
		ScheduledTime: r.ScheduledTime(),
		Pickup:        locationFromDomain(r.Pickup()),
		Drop:          locationFromDomain(r.Drop()),
		GoodsType:     r.GoodsType(),
		WeightKg:      r.WeightKg(),
		Status:        int(r.Status()),
		WinnerBidID:   winnerBidID,
		CreatedAt:     r.CreatedAt(),
		Version:       r.Version(),
		Bids:          bids,
		Assignment:    assignment,
	}
}

func bidFromDomain(b *request.TransportBid) TransportBidDTO {
	return TransportBidDTO{
		ID:            b.ID().Bytes(),
		RequestID:     b.RequestID().Bytes(),
		TransporterID: b.TransporterID().Bytes(),
		Amount:        b.Amount().Amount(),
		Currency:      string(b.Amount().Currency()),
		Note:          b.Note(),
		BidTime:       b.BidTime(),
		Status:        int(b.Status()),
	}
}

func locationFromDomain(l kernel.Location) LocationDTO {
	return LocationDTO{
		Latitude:   l.Latitude(),
		Longitude:  l.Longitude(),
		Division:   l.Division(),
		District:   l.District(),
		Thana:      l.Thana(),
		PostalCode: l.PostalCode(),
		Address:    l.Address(),
	}
}

func toDomain(dto TransportRequestDTO) (*request.TransportRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := locationToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	drop, err := locationToDomain(dto.Drop)
	if err != nil {
		return nil, err
	}

	var winnerBidID *kernel.UUID
	if dto.WinnerBidID != nil {
		wID, winnerErr := kernel.UUIDFromBytes((*dto.WinnerBidID)[:])
		if winnerErr != nil {
			return nil, winnerErr
		}
		winnerBidID = &wID
	}

	bids := make([]*request.TransportBid, 0, len(dto.Bids))
	for _, bidDto := range dto.Bids {
		b, bidErr := bidToDomain(bidDto)
		if bidErr != nil {
			return nil, bidErr
		}
		bids = append(bids, b)
	}

	var assignment *request.JobAssignment
	if dto.Assignment != nil {
		assignment, err = assignmentToDomain(*dto.Assignment)
		if err != nil {
			return nil, err
		}
	}

	details := request.Details{
		ScheduledTime: dto.ScheduledTime,
		Pickup:        pickup,
		Drop:          drop,
		GoodsType:     dto.GoodsType,
		WeightKg:      dto.WeightKg,
	}

	return request.RestoreTransportRequest(
		id,
		requesterID,
		details,
		request.Status(dto.Status),
		winnerBidID,
		bids,
		assignment,
		dto.CreatedAt,
		dto.Version,
	)
}

func bidToDomain(dto TransportBidDTO) (*request.TransportBid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	transporterID, err := kernel.UUIDFromBytes(dto.TransporterID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount, kernel.Currency(dto.Currency))
	if err != nil {
		return nil, err
	}

	return request.RestoreTransportBid(id, requestID, transporterID, amount, dto.Note, dto.BidTime,
		request.BidStatus(dto.Status))
}

func assignmentToDomain(dto JobAssignmentDTO) (*request.JobAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return request.RestoreJobAssignment(id, requestID, vehicleID, driverID, dto.AssignedAt)
}

func locationToDomain(dto LocationDTO) (kernel.Location, error) {
	return kernel.NewLocation(
		dto.Latitude,
		dto.Longitude,
		dto.Division,
		dto.District,
		dto.Thana,
		dto.PostalCode,
		dto.Address,
	)
}
