package transporter_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfile(t *testing.T) *transporter.TransporterProfile {
	t.Helper()
	p, err := transporter.NewTransporterProfile(kernel.NewUUID(), kernel.NewUUID(), transporter.ProfileDetails{
		DisplayName:   "Padma Transport",
		ContactNumber: "+8801811000000",
		Type:          transporter.Agency,
		BaseLocation:  baseLocation(t),
	})
	require.NoError(t, err)
	return p
}

func TestNewTransporterProfile(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		p := newProfile(t)

		require.NoError(t, p.Validate())
		assert.InDelta(t, transporter.DefaultServiceRadiusKm, p.ServiceRadiusKm(), 0)
		assert.False(t, p.IsVerified())
		assert.True(t, p.Rating().IsZero())
		assert.Zero(t, p.CompletedJobs())
		assert.Zero(t, p.Version())
		assert.Empty(t, p.Drivers())
		assert.Empty(t, p.Vehicles())
	})

	t.Run("should fail for missing details", func(t *testing.T) {
		p, err := transporter.NewTransporterProfile(kernel.NewUUID(), kernel.UUID{}, transporter.ProfileDetails{})

		require.Error(t, err)
		assert.Nil(t, p)
		for _, field := range []string{"UUID", "display name", "contact number", "transporter type", "location"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestTransporterProfile_Fleet(t *testing.T) {
	p := newProfile(t)
	d := newDriver(t, p.ID())
	v := newVehicle(t, p.ID(), "3")

	require.NoError(t, p.AddDriver(d))
	require.NoError(t, p.AddVehicle(v))

	t.Run("lookup", func(t *testing.T) {
		gotDriver, err := p.Driver(d.ID())
		require.NoError(t, err)
		assert.Same(t, d, gotDriver)

		gotVehicle, err := p.Vehicle(v.ID())
		require.NoError(t, err)
		assert.Same(t, v, gotVehicle)
	})

	t.Run("missing resources are not found", func(t *testing.T) {
		_, err := p.Driver(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = p.Vehicle(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("duplicate license number is rejected", func(t *testing.T) {
		err := p.AddDriver(newDriver(t, p.ID()))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("foreign resources are rejected", func(t *testing.T) {
		other := kernel.NewUUID()

		require.ErrorIs(t, p.AddVehicle(newVehicle(t, other, "3")), errs.ErrValueIsInvalid)
		assert.Len(t, p.Vehicles(), 1)
	})

	t.Run("dispatch and release", func(t *testing.T) {
		require.NoError(t, p.DispatchVehicle(v.ID()))
		assert.Equal(t, transporter.VehicleInTrip, v.Status())

		err := p.DispatchVehicle(v.ID())
		require.ErrorIs(t, err, errs.ErrInvalidState)

		require.NoError(t, p.ReleaseVehicle(v.ID()))
		assert.Equal(t, transporter.VehicleActive, v.Status())

		require.ErrorIs(t, p.DispatchVehicle(kernel.NewUUID()), errs.ErrObjectNotFound)
	})
}

func TestTransporterProfile_Verification(t *testing.T) {
	p := newProfile(t)

	require.NoError(t, p.Verify())
	assert.True(t, p.IsVerified())
	require.ErrorIs(t, p.Verify(), errs.ErrInvalidState)

	require.NoError(t, p.RevokeVerification())
	require.ErrorIs(t, p.RevokeVerification(), errs.ErrInvalidState)
}

func TestTransporterProfile_CanServe(t *testing.T) {
	dhanmondi, err := kernel.NewLocation(23.7465, 90.3760, "Dhaka", "Dhaka", "Dhanmondi", "1209", "Road 27")
	require.NoError(t, err)
	chattogram, err := kernel.NewLocation(22.3569, 91.7832, "Chattogram", "Chattogram", "Double Mooring", "4100", "Agrabad")
	require.NoError(t, err)

	p := newProfile(t)

	ok, err := p.CanServe(dhanmondi)
	require.NoError(t, err)
	assert.False(t, ok, "unverified transporters serve nothing")

	require.NoError(t, p.Verify())

	ok, err = p.CanServe(dhanmondi)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanServe(chattogram)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.ChangeServiceRadius(250))
	ok, err = p.CanServe(chattogram)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransporterProfile_RatingAndJobs(t *testing.T) {
	p := newProfile(t)

	require.NoError(t, p.UpdateRating(decimal.RequireFromString("4.5")))
	require.ErrorIs(t, p.UpdateRating(decimal.RequireFromString("5.01")), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, p.UpdateRating(decimal.NewFromInt(-1)), errs.ErrValidation)
	assert.Equal(t, "4.5", p.Rating().String())

	p.RecordCompletedJob()
	p.RecordCompletedJob()
	assert.Equal(t, 2, p.CompletedJobs())

	require.Error(t, p.ChangeServiceRadius(0))
}

func TestRestoreTransporterProfile(t *testing.T) {
	id := kernel.NewUUID()
	d := newDriver(t, id)
	v := newVehicle(t, id, "10")

	p, err := transporter.RestoreTransporterProfile(
		id, kernel.NewUUID(),
		transporter.ProfileDetails{
			DisplayName:   "Meghna Logistics",
			ContactNumber: "+8801911000000",
			Type:          transporter.Individual,
			BaseLocation:  baseLocation(t),
		},
		80, true, decimal.RequireFromString("3.75"), 12,
		[]*transporter.Driver{d}, []*transporter.Vehicle{v}, 7,
	)

	require.NoError(t, err)
	assert.Equal(t, 7, p.Version())
	assert.True(t, p.IsVerified())
	assert.Equal(t, 12, p.CompletedJobs())
	assert.Len(t, p.Drivers(), 1)
	assert.Len(t, p.Vehicles(), 1)
}
