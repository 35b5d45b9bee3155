package request_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/transporter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func gulshan(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(23.8103, 90.4125, "Dhaka", "Dhaka", "Gulshan", "1212", "Road 11, House 7")
	require.NoError(t, err)
	return loc
}

func agrabad(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(22.3569, 91.7832, "Chattogram", "Chattogram", "Double Mooring", "4100", "Agrabad C/A")
	require.NoError(t, err)
	return loc
}

func bdt(amount string) kernel.Money {
	return kernel.MustNewMoney(decimal.RequireFromString(amount), kernel.CurrencyBDT)
}

func validDetails(t *testing.T, weightKg string) request.Details {
	t.Helper()
	return request.Details{
		ScheduledTime: now.Add(48 * time.Hour),
		Pickup:        gulshan(t),
		Drop:          agrabad(t),
		GoodsType:     "garments",
		WeightKg:      decimal.RequireFromString(weightKg),
	}
}

func newRequest(t *testing.T, weightKg string) *request.TransportRequest {
	t.Helper()
	r, _, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), validDetails(t, weightKg), now)
	require.NoError(t, err)
	return r
}

// fleet returns an available driver and a vehicle of the given tonnage owned by transporterID.
func fleet(t *testing.T, transporterID kernel.UUID, capacityTon string) (*transporter.Vehicle, *transporter.Driver) {
	t.Helper()
	v, err := transporter.NewVehicle(kernel.NewUUID(), transporterID, transporter.VehicleDetails{
		RegistrationNumber: "DHAKA METRO-TA-11-2345",
		Type:               transporter.CoveredVan,
		CapacityTon:        decimal.RequireFromString(capacityTon),
		FitnessExpiry:      now.AddDate(0, 6, 0),
	})
	require.NoError(t, err)

	d, err := transporter.NewDriver(kernel.NewUUID(), transporterID, transporter.DriverDetails{
		FullName:      "Abdul Karim",
		Phone:         "+8801711000000",
		LicenseNumber: "DK0123456CL0001",
		LicenseExpiry: now.AddDate(1, 0, 0),
		NIDNumber:     "1990123456789",
	})
	require.NoError(t, err)

	return v, d
}

// confirmed returns a Confirmed request whose winning bid belongs to the returned transporter.
func confirmed(t *testing.T, weightKg string) (*request.TransportRequest, kernel.UUID) {
	t.Helper()
	r := newRequest(t, weightKg)
	transporterID := kernel.NewUUID()
	bid, _, err := r.SubmitBid(transporterID, bdt("4500"), "", now)
	require.NoError(t, err)
	_, err = r.AcceptBid(bid.ID(), now)
	require.NoError(t, err)
	return r, transporterID
}
