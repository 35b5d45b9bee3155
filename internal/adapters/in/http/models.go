package http

import (
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID string `json:"id"`
}

type Location struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Division   string  `json:"division"`
	District   string  `json:"district"`
	Thana      string  `json:"thana"`
	PostalCode string  `json:"postalCode,omitempty"`
	Address    string  `json:"address"`
}

func (l Location) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(l.Latitude, l.Longitude, l.Division, l.District, l.Thana, l.PostalCode, l.Address)
}

func locationFromDomain(l kernel.Location) Location {
	return Location{
		Latitude:   l.Latitude(),
		Longitude:  l.Longitude(),
		Division:   l.Division(),
		District:   l.District(),
		Thana:      l.Thana(),
		PostalCode: l.PostalCode(),
		Address:    l.Address(),
	}
}

type NewTransporter struct {
	UserID             string   `json:"userId"`
	DisplayName        string   `json:"displayName"`
	ContactNumber      string   `json:"contactNumber"`
	Type               string   `json:"type"`
	TradeLicenseNumber string   `json:"tradeLicenseNumber,omitempty"`
	BaseLocation       Location `json:"baseLocation"`
	ServiceRadiusKm    float64  `json:"serviceRadiusKm,omitempty"`
}

type NewDriver struct {
	FullName           string    `json:"fullName"`
	Phone              string    `json:"phone"`
	LicenseNumber      string    `json:"licenseNumber"`
	LicenseExpiry      time.Time `json:"licenseExpiry"`
	LicenseDocumentRef string    `json:"licenseDocumentRef,omitempty"`
	NIDNumber          string    `json:"nidNumber"`
}

type NewVehicle struct {
	RegistrationNumber string          `json:"registrationNumber"`
	Type               string          `json:"type"`
	CapacityTon        decimal.Decimal `json:"capacityTon"`
	FitnessExpiry      time.Time       `json:"fitnessExpiry"`
	DocumentRefs       []string        `json:"documentRefs,omitempty"`
}

type NewTransportRequest struct {
	RequesterID   string          `json:"requesterId"`
	ScheduledTime time.Time       `json:"scheduledTime"`
	Pickup        Location        `json:"pickup"`
	Drop          Location        `json:"drop"`
	GoodsType     string          `json:"goodsType"`
	WeightKg      decimal.Decimal `json:"weightKg"`
}

type NewBid struct {
	TransporterID string          `json:"transporterId"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
}

type BidWithdrawal struct {
	TransporterID string `json:"transporterId"`
}

type NewAssignment struct {
	VehicleID string `json:"vehicleId"`
	DriverID  string `json:"driverId"`
}

type TransportRequest struct {
	ID                  string          `json:"id"`
	RequesterID         string          `json:"requesterId"`
	Status              string          `json:"status"`
	ScheduledTime       time.Time       `json:"scheduledTime"`
	Pickup              Location        `json:"pickup"`
	Drop                Location        `json:"drop"`
	GoodsType           string          `json:"goodsType"`
	WeightKg            decimal.Decimal `json:"weightKg"`
	EstimatedDistanceKm float64         `json:"estimatedDistanceKm"`
	WinnerBidID         *string         `json:"winnerBidId,omitempty"`
	Bids                []Bid           `json:"bids"`
	Assignment          *Assignment     `json:"assignment,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type Bid struct {
	ID            string          `json:"id"`
	TransporterID string          `json:"transporterId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Note          string          `json:"note,omitempty"`
	BidTime       time.Time       `json:"bidTime"`
	Status        string          `json:"status"`
}

type Assignment struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicleId"`
	DriverID   string    `json:"driverId"`
	AssignedAt time.Time `json:"assignedAt"`
}

type NearbyRequest struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	ScheduledTime time.Time       `json:"scheduledTime"`
	Pickup        Location        `json:"pickup"`
	Drop          Location        `json:"drop"`
	GoodsType     string          `json:"goodsType"`
	WeightKg      decimal.Decimal `json:"weightKg"`
	BidCount      int             `json:"bidCount"`
	DistanceKm    float64         `json:"distanceKm"`
}

type TransporterBid struct {
	BidID         string          `json:"bidId"`
	RequestID     string          `json:"requestId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Note          string          `json:"note,omitempty"`
	BidTime       time.Time       `json:"bidTime"`
	Status        string          `json:"status"`
	RequestStatus string          `json:"requestStatus"`
	ScheduledTime time.Time       `json:"scheduledTime"`
	PickupThana   string          `json:"pickupThana"`
	DropThana     string          `json:"dropThana"`
	IsWinner      bool            `json:"isWinner"`
}

func transportRequestFromView(v queries.GetTransportRequestQueryResponse) TransportRequest {
	response := TransportRequest{
		ID:                  v.ID.String(),
		RequesterID:         v.RequesterID.String(),
		Status:              v.Status,
		ScheduledTime:       v.ScheduledTime,
		Pickup:              locationFromDomain(v.Pickup),
		Drop:                locationFromDomain(v.Drop),
		GoodsType:           v.GoodsType,
		WeightKg:            v.WeightKg,
		EstimatedDistanceKm: v.EstimatedDistanceKm,
		Bids:                make([]Bid, len(v.Bids)),
		CreatedAt:           v.CreatedAt,
	}

	if v.WinnerBidID != nil {
		id := v.WinnerBidID.String()
		response.WinnerBidID = &id
	}

	for i, b := range v.Bids {
		response.Bids[i] = Bid{
			ID:            b.ID.String(),
			TransporterID: b.TransporterID.String(),
			Amount:        b.Amount.Amount(),
			Currency:      string(b.Amount.Currency()),
			Note:          b.Note,
			BidTime:       b.BidTime,
			Status:        b.Status,
		}
	}

	if a := v.Assignment; a != nil {
		response.Assignment = &Assignment{
			ID:         a.ID.String(),
			VehicleID:  a.VehicleID.String(),
			DriverID:   a.DriverID.String(),
			AssignedAt: a.AssignedAt,
		}
	}

	return response
}
