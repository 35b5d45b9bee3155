package transporter_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func validDriverDetails() transporter.DriverDetails {
	return transporter.DriverDetails{
		FullName:           "Abdul Karim",
		Phone:              "+8801711000000",
		LicenseNumber:      "DK0123456CL0001",
		LicenseExpiry:      now.AddDate(1, 0, 0),
		LicenseDocumentRef: "docs/license/abdul.pdf",
		NIDNumber:          "1990123456789",
	}
}

func validVehicleDetails(capacityTon string) transporter.VehicleDetails {
	return transporter.VehicleDetails{
		RegistrationNumber: "DHAKA METRO-TA-11-2345",
		Type:               transporter.CoveredVan,
		CapacityTon:        decimal.RequireFromString(capacityTon),
		FitnessExpiry:      now.AddDate(0, 6, 0),
		DocumentRefs:       []string{"docs/fitness/2026.pdf"},
	}
}

func newDriver(t *testing.T, transporterID kernel.UUID) *transporter.Driver {
	t.Helper()
	d, err := transporter.NewDriver(kernel.NewUUID(), transporterID, validDriverDetails())
	require.NoError(t, err)
	return d
}

func newVehicle(t *testing.T, transporterID kernel.UUID, capacityTon string) *transporter.Vehicle {
	t.Helper()
	v, err := transporter.NewVehicle(kernel.NewUUID(), transporterID, validVehicleDetails(capacityTon))
	require.NoError(t, err)
	return v
}

func baseLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(23.8103, 90.4125, "Dhaka", "Dhaka", "Gulshan", "1212", "Road 11, House 7")
	require.NoError(t, err)
	return loc
}
