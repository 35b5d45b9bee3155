package transporter_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewVehicle(t *testing.T) {
	t.Run("should create active vehicle", func(t *testing.T) {
		v, err := transporter.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), validVehicleDetails("5"))

		require.NoError(t, err)
		assert.Equal(t, transporter.VehicleActive, v.Status())
		assert.Equal(t, transporter.CoveredVan, v.Type())
		assert.True(t, v.CapacityTon().Equal(decimal.NewFromInt(5)))
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		_, err := transporter.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), validVehicleDetails("0"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "capacity")
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := transporter.NewVehicle(kernel.NewUUID(), kernel.UUID{}, transporter.VehicleDetails{})

		require.Error(t, err)
		for _, field := range []string{"UUID", "registration number", "vehicle type", "capacity", "fitness expiry"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("document refs are copied", func(t *testing.T) {
		details := validVehicleDetails("5")
		v, err := transporter.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), details)
		require.NoError(t, err)

		details.DocumentRefs[0] = "tampered"
		refs := v.DocumentRefs()
		refs[0] = "tampered too"

		assert.Equal(t, []string{"docs/fitness/2026.pdf"}, v.DocumentRefs())
	})
}

func TestVehicle_CanCarryWeight(t *testing.T) {
	v := newVehicle(t, kernel.NewUUID(), "1.5")

	tests := []struct {
		weightKg string
		want     bool
	}{
		{"1", true},
		{"1499.999", true},
		{"1500", true},
		{"1500.001", false},
		{"2000", false},
	}

	for _, tt := range tests {
		t.Run(tt.weightKg, func(t *testing.T) {
			assert.Equal(t, tt.want, v.CanCarryWeight(decimal.RequireFromString(tt.weightKg)))
		})
	}
}

func TestVehicle_CanCarryWeight_Law(t *testing.T) {
	thousand := decimal.NewFromInt(1000)

	rapid.Check(t, func(t *rapid.T) {
		// capacities and weights with up to three decimals, as stored in numeric columns
		capacity := decimal.New(rapid.Int64Range(1, 60_000).Draw(t, "capacity_milli_ton"), -3)
		weight := decimal.New(rapid.Int64Range(1, 100_000_000).Draw(t, "weight_gram"), -3)

		v, err := transporter.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), transporter.VehicleDetails{
			RegistrationNumber: "CTG-DA-11-0001",
			Type:               transporter.OpenTruck,
			CapacityTon:        capacity,
			FitnessExpiry:      now.AddDate(1, 0, 0),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := weight.Div(thousand).LessThanOrEqual(capacity)
		if got := v.CanCarryWeight(weight); got != want {
			t.Fatalf("CanCarryWeight(%s) with capacity %s t = %v, want %v", weight, capacity, got, want)
		}
		if !v.CanCarryWeight(capacity.Mul(thousand)) {
			t.Fatalf("boundary weight %s kg must fit capacity %s t", capacity.Mul(thousand), capacity)
		}
	})
}

func TestVehicle_IsAvailableForAssignment(t *testing.T) {
	t.Run("active with valid fitness", func(t *testing.T) {
		v := newVehicle(t, kernel.NewUUID(), "5")
		assert.True(t, v.IsAvailableForAssignment(now))
	})

	t.Run("fitness expired", func(t *testing.T) {
		details := validVehicleDetails("5")
		details.FitnessExpiry = now.Add(-1)
		v, err := transporter.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), details)
		require.NoError(t, err)

		assert.False(t, v.IsAvailableForAssignment(now))
		assert.Contains(t, v.UnavailabilityReason(now), "fitness certificate expired")
	})

	for _, tc := range []struct {
		name   string
		action func(v *transporter.Vehicle) error
		reason string
	}{
		{"in trip", (*transporter.Vehicle).MarkInTrip, "vehicle is intrip"},
		{"maintenance", (*transporter.Vehicle).SendToMaintenance, "vehicle is maintenance"},
		{"inactive", (*transporter.Vehicle).Deactivate, "vehicle is inactive"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := newVehicle(t, kernel.NewUUID(), "5")
			require.NoError(t, tc.action(v))

			assert.False(t, v.IsAvailableForAssignment(now))
			assert.Equal(t, tc.reason, v.UnavailabilityReason(now))
		})
	}
}

func TestVehicleStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    transporter.VehicleStatus
		action  func(transporter.VehicleStatus) (transporter.VehicleStatus, error)
		want    transporter.VehicleStatus
		wantErr bool
	}{
		{"dispatch active", transporter.VehicleActive, transporter.VehicleStatus.MarkInTrip, transporter.VehicleInTrip, false},
		{"dispatch in trip", transporter.VehicleInTrip, transporter.VehicleStatus.MarkInTrip, transporter.VehicleInTrip, true},
		{"release in trip", transporter.VehicleInTrip, transporter.VehicleStatus.Release, transporter.VehicleActive, false},
		{"release active", transporter.VehicleActive, transporter.VehicleStatus.Release, transporter.VehicleActive, true},
		{"deactivate in trip", transporter.VehicleInTrip, transporter.VehicleStatus.Deactivate, transporter.VehicleInTrip, true},
		{"deactivate maintenance", transporter.VehicleMaintenance, transporter.VehicleStatus.Deactivate, transporter.VehicleInactive, false},
		{"maintenance from in trip", transporter.VehicleInTrip, transporter.VehicleStatus.SendToMaintenance, transporter.VehicleInTrip, true},
		{"back from maintenance", transporter.VehicleMaintenance, transporter.VehicleStatus.ReturnFromMaintenance, transporter.VehicleActive, false},
		{"reactivate", transporter.VehicleInactive, transporter.VehicleStatus.Reactivate, transporter.VehicleActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.action(tt.from)

			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				var stateErr *errs.InvalidStateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, tt.from.String(), stateErr.Current)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseVehicleType(t *testing.T) {
	vt, err := transporter.ParseVehicleType("coveredvan")
	require.NoError(t, err)
	assert.Equal(t, transporter.CoveredVan, vt)

	_, err = transporter.ParseVehicleType("rickshaw")
	require.ErrorIs(t, err, errs.ErrValidation)
}
