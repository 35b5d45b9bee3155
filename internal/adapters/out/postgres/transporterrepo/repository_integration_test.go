package transporterrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/transporterrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type TransporterRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *transporterrepo.GormTransporterRepository
}

func TestTransporterRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(TransporterRepositoryIntegrationTestSuite))
}

func (suite *TransporterRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = transporterrepo.NewGormTransporterRepository(database.DB)
}

func (suite *TransporterRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *TransporterRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresProfileAndFleet() {
	ctx := context.Background()
	profile := suite.createProfile("Meghna Logistics")
	vehicle := suite.addVehicle(profile, "DHAKA METRO-TA-11-1111", "7.5")
	driver := suite.addDriver(profile, "DK0111111CL0001")
	suite.Require().NoError(profile.Verify())

	suite.Require().NoError(suite.repository.Add(ctx, profile))

	loaded, err := suite.repository.Get(ctx, profile.ID())
	suite.Require().NoError(err)
	suite.Equal("Meghna Logistics", loaded.DisplayName())
	suite.Equal(transporter.Agency, loaded.Type())
	suite.Equal("TRAD/DNCC/012345/2024", loaded.TradeLicenseNumber())
	suite.True(loaded.IsVerified())
	suite.InDelta(transporter.DefaultServiceRadiusKm, loaded.ServiceRadiusKm(), 1e-9)
	suite.True(loaded.Rating().IsZero())
	suite.Equal(0, loaded.Version())

	loadedVehicle, err := loaded.Vehicle(vehicle.ID())
	suite.Require().NoError(err)
	suite.True(loadedVehicle.CapacityTon().Equal(decimal.RequireFromString("7.5")))
	suite.Equal([]string{"fitness/2026/0001.pdf"}, loadedVehicle.DocumentRefs())
	suite.True(loadedVehicle.FitnessExpiry().Equal(vehicle.FitnessExpiry()))
	suite.Equal(transporter.VehicleActive, loadedVehicle.Status())

	loadedDriver, err := loaded.Driver(driver.ID())
	suite.Require().NoError(err)
	suite.Equal("DK0111111CL0001", loadedDriver.LicenseNumber())
	suite.Equal("1990123456789", loadedDriver.NIDNumber())
	suite.True(loadedDriver.LicenseExpiry().Equal(driver.LicenseExpiry()))
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestGet_NonExistentProfile_ReturnsNotFound() {
	loaded, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(loaded)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestUpdate_SavesFleetChangesAndBumpsVersion() {
	ctx := context.Background()
	profile := suite.createProfile("Karnaphuli Transport")
	vehicle := suite.addVehicle(profile, "CHATTA METRO-DA-12-3456", "3")
	suite.Require().NoError(suite.repository.Add(ctx, profile))

	loaded, err := suite.repository.Get(ctx, profile.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.DispatchVehicle(vehicle.ID()))
	suite.addDriver(loaded, "CT0222222CL0002")
	suite.Require().NoError(loaded.UpdateRating(decimal.RequireFromString("4.75")))
	loaded.RecordCompletedJob()

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, profile.ID())
	suite.Require().NoError(err)
	suite.Equal(1, reloaded.Version())
	suite.Equal(1, reloaded.CompletedJobs())
	suite.True(reloaded.Rating().Equal(decimal.RequireFromString("4.75")))
	suite.Len(reloaded.Drivers(), 1)
	reloadedVehicle, err := reloaded.Vehicle(vehicle.ID())
	suite.Require().NoError(err)
	suite.Equal(transporter.VehicleInTrip, reloadedVehicle.Status())
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestUpdate_ConcurrentDispatch_SecondWriterLoses() {
	ctx := context.Background()
	profile := suite.createProfile("Rupsha Carriers")
	vehicle := suite.addVehicle(profile, "KHULNA-TA-11-0042", "5")
	suite.Require().NoError(suite.repository.Add(ctx, profile))

	first, err := suite.repository.Get(ctx, profile.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, profile.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.DispatchVehicle(vehicle.ID()))
	suite.Require().NoError(second.DispatchVehicle(vehicle.ID()))

	suite.Require().NoError(suite.repository.Update(ctx, first))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestUpdate_DuplicateLicenseAcrossTransporters_ReturnsValidationError() {
	ctx := context.Background()
	owner := suite.createProfile("Surma Movers")
	suite.addDriver(owner, "SY0333333CL0003")
	suite.Require().NoError(suite.repository.Add(ctx, owner))

	other := suite.createProfile("Teesta Freight")
	suite.Require().NoError(suite.repository.Add(ctx, other))
	loaded, err := suite.repository.Get(ctx, other.ID())
	suite.Require().NoError(err)
	suite.addDriver(loaded, "SY0333333CL0003")

	err = suite.repository.Update(ctx, loaded)

	var invalid *errs.ValueIsInvalidError
	suite.Require().ErrorAs(err, &invalid)
	suite.Equal("license number", invalid.ParamName)
}

func (suite *TransporterRepositoryIntegrationTestSuite) TestGetMany_SkipsUnknownIDs() {
	ctx := context.Background()
	first := suite.createProfile("Bhairab Lines")
	second := suite.createProfile("Dhaleshwari Haulage")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	profiles, err := suite.repository.GetMany(ctx, []kernel.UUID{first.ID(), kernel.NewUUID(), second.ID()})

	suite.Require().NoError(err)
	suite.Len(profiles, 2)

	empty, err := suite.repository.GetMany(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *TransporterRepositoryIntegrationTestSuite) createProfile(name string) *transporter.TransporterProfile {
	base, err := kernel.NewLocation(23.7465, 90.3760, "Dhaka", "Dhaka", "Dhanmondi", "1209", "Road 27")
	suite.Require().NoError(err)

	profile, err := transporter.NewTransporterProfile(kernel.NewUUID(), kernel.NewUUID(), transporter.ProfileDetails{
		DisplayName:        name,
		ContactNumber:      "+8801700000000",
		Type:               transporter.Agency,
		TradeLicenseNumber: "TRAD/DNCC/012345/2024",
		BaseLocation:       base,
	})
	suite.Require().NoError(err)
	return profile
}

func (suite *TransporterRepositoryIntegrationTestSuite) addVehicle(
	p *transporter.TransporterProfile,
	registration, capacity string,
) *transporter.Vehicle {
	vehicle, err := transporter.NewVehicle(kernel.NewUUID(), p.ID(), transporter.VehicleDetails{
		RegistrationNumber: registration,
		Type:               transporter.OpenTruck,
		CapacityTon:        decimal.RequireFromString(capacity),
		FitnessExpiry:      now.AddDate(1, 0, 0),
		DocumentRefs:       []string{"fitness/2026/0001.pdf"},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(p.AddVehicle(vehicle))
	return vehicle
}

func (suite *TransporterRepositoryIntegrationTestSuite) addDriver(
	p *transporter.TransporterProfile,
	license string,
) *transporter.Driver {
	driver, err := transporter.NewDriver(kernel.NewUUID(), p.ID(), transporter.DriverDetails{
		FullName:      "Nurul Amin",
		Phone:         "+8801811000222",
		LicenseNumber: license,
		LicenseExpiry: now.AddDate(2, 0, 0),
		NIDNumber:     "1990123456789",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(p.AddDriver(driver))
	return driver
}
