package requestrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type TransportRequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *requestrepo.GormTransportRequestRepository
}

func TestTransportRequestRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(TransportRequestRepositoryIntegrationTestSuite))
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = requestrepo.NewGormTransportRequestRepository(database.DB)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresEveryField() {
	ctx := context.Background()
	original := suite.createRequest(now.Add(48 * time.Hour))

	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(original.ID()))
	suite.True(loaded.RequesterID().IsEqual(original.RequesterID()))
	suite.True(loaded.ScheduledTime().Equal(original.ScheduledTime()))
	suite.True(loaded.CreatedAt().Equal(now))
	suite.Equal("garments", loaded.GoodsType())
	suite.True(loaded.WeightKg().Equal(decimal.RequireFromString("2500.5")))
	suite.Equal(request.Open, loaded.Status())
	suite.Equal(0, loaded.Version())
	suite.Nil(loaded.WinnerBidID())
	suite.Empty(loaded.Bids())

	samePickup, err := loaded.Pickup().IsEqual(original.Pickup())
	suite.Require().NoError(err)
	suite.True(samePickup)
	sameDrop, err := loaded.Drop().IsEqual(original.Drop())
	suite.Require().NoError(err)
	suite.True(sameDrop)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsValidationError() {
	ctx := context.Background()
	original := suite.createRequest(now.Add(48 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, original))

	err := suite.repository.Add(ctx, original)

	suite.Require().ErrorIs(err, errs.ErrValidation)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestGet_NonExistentRequest_ReturnsNotFound() {
	loaded, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(loaded)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_SavesBidsAndWinner() {
	ctx := context.Background()
	r := suite.createRequest(now.Add(48 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, r))

	cheap, _, err := r.SubmitBid(kernel.NewUUID(), bdt("4200"), "two trucks available", now)
	suite.Require().NoError(err)
	_, _, err = r.SubmitBid(kernel.NewUUID(), bdt("5100.50"), "", now.Add(time.Minute))
	suite.Require().NoError(err)
	_, err = r.AcceptBid(cheap.ID(), now.Add(time.Hour))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Confirmed, loaded.Status())
	suite.Equal(1, loaded.Version())
	suite.Require().NotNil(loaded.WinnerBidID())
	suite.True(loaded.WinnerBidID().IsEqual(cheap.ID()))

	bids := loaded.Bids()
	suite.Require().Len(bids, 2)
	suite.Equal(request.BidStatusAccepted, bids[0].Status())
	suite.Equal("two trucks available", bids[0].Note())
	suite.True(bids[0].Amount().IsEqual(bdt("4200")))
	suite.Equal(request.BidRejected, bids[1].Status())
	suite.True(bids[1].Amount().IsEqual(bdt("5100.50")))
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := context.Background()
	r := suite.createRequest(now.Add(48 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, r))

	first, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.StartBidding())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.Cancel(now)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Bidding, loaded.Status())
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_MissingRequest_ReturnsNotFound() {
	r := suite.createRequest(now.Add(48 * time.Hour))

	err := suite.repository.Update(context.Background(), r)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_AssignmentLifecycle() {
	ctx := context.Background()
	transporterID := kernel.NewUUID()
	vehicle, driver := suite.createFleet(transporterID)
	r := suite.confirm(suite.createRequest(now.Add(48*time.Hour)), transporterID)

	assigned := suite.assign(r.ID(), vehicle, driver)
	suite.Require().NotNil(assigned.Assignment())
	suite.True(assigned.Assignment().VehicleID().IsEqual(vehicle.ID()))
	suite.True(assigned.Assignment().DriverID().IsEqual(driver.ID()))
	suite.True(assigned.Assignment().AssignedAt().Equal(now))

	_, err := assigned.Cancel(now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, assigned))

	cancelled, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Cancelled, cancelled.Status())
	suite.Nil(cancelled.Assignment())
	suite.assertAssignmentCount(0)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_VehicleOnActiveJob_ReturnsResourceUnavailable() {
	ctx := context.Background()
	transporterID := kernel.NewUUID()
	vehicle, driver := suite.createFleet(transporterID)
	_, otherDriver := suite.createFleet(transporterID)

	first := suite.confirm(suite.createRequest(now.Add(48*time.Hour)), transporterID)
	second := suite.confirm(suite.createRequest(now.Add(72*time.Hour)), transporterID)
	suite.assign(first.ID(), vehicle, driver)

	loaded, err := suite.repository.Get(ctx, second.ID())
	suite.Require().NoError(err)
	assignment, err := request.NewJobAssignment(second.ID(), vehicle.ID(), otherDriver.ID(), vehicle, otherDriver, loaded, now)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignJob(assignment))

	err = suite.repository.Update(ctx, loaded)

	var unavailable *errs.ResourceUnavailableError
	suite.Require().ErrorAs(err, &unavailable)
	suite.Equal("vehicle", unavailable.Resource)
	suite.True(errs.IsRetryable(err))
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestUpdate_CompletedJobFreesTheVehicle() {
	ctx := context.Background()
	transporterID := kernel.NewUUID()
	vehicle, driver := suite.createFleet(transporterID)

	first := suite.assign(suite.confirm(suite.createRequest(now.Add(48*time.Hour)), transporterID).ID(), vehicle, driver)
	suite.Require().NoError(first.StartTransit())
	_, err := first.Complete(now.Add(50 * time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.assign(suite.confirm(suite.createRequest(now.Add(72*time.Hour)), transporterID).ID(), vehicle, driver)

	suite.NotNil(second.Assignment())
	suite.assertAssignmentCount(2)
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) TestGetExpired_ReturnsOnlyOpenAndBiddingPastSchedule() {
	ctx := context.Background()

	openPast := suite.createRequest(now.Add(24 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, openPast))

	biddingPast := suite.createRequest(now.Add(12 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, biddingPast))
	_, _, err := biddingPast.SubmitBid(kernel.NewUUID(), bdt("3000"), "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, biddingPast))

	future := suite.createRequest(now.Add(96 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, future))

	suite.confirm(suite.createRequest(now.Add(6*time.Hour)), kernel.NewUUID())

	expired, err := suite.repository.GetExpired(ctx, now.Add(48*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(expired, 2)
	suite.True(expired[0].ID().IsEqual(biddingPast.ID()))
	suite.Len(expired[0].Bids(), 1)
	suite.True(expired[1].ID().IsEqual(openPast.ID()))
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) createRequest(scheduled time.Time) *request.TransportRequest {
	pickup, err := kernel.NewLocation(23.8103, 90.4125, "Dhaka", "Dhaka", "Gulshan", "1212", "Road 11, House 7")
	suite.Require().NoError(err)
	drop, err := kernel.NewLocation(22.3569, 91.7832, "Chattogram", "Chattogram", "Double Mooring", "4100", "Agrabad C/A")
	suite.Require().NoError(err)

	r, _, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), request.Details{
		ScheduledTime: scheduled,
		Pickup:        pickup,
		Drop:          drop,
		GoodsType:     "garments",
		WeightKg:      decimal.RequireFromString("2500.5"),
	}, now)
	suite.Require().NoError(err)
	return r
}

// confirm stores r with an accepted bid from transporterID and returns the stored copy.
func (suite *TransportRequestRepositoryIntegrationTestSuite) confirm(
	r *request.TransportRequest,
	transporterID kernel.UUID,
) *request.TransportRequest {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, r))

	bid, _, err := r.SubmitBid(transporterID, bdt("4500"), "", now)
	suite.Require().NoError(err)
	_, err = r.AcceptBid(bid.ID(), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	return loaded
}

// assign loads the request, attaches an assignment, saves it, and returns the reloaded request.
func (suite *TransportRequestRepositoryIntegrationTestSuite) assign(
	requestID kernel.UUID,
	vehicle *transporter.Vehicle,
	driver *transporter.Driver,
) *request.TransportRequest {
	ctx := context.Background()
	r, err := suite.repository.Get(ctx, requestID)
	suite.Require().NoError(err)

	assignment, err := request.NewJobAssignment(requestID, vehicle.ID(), driver.ID(), vehicle, driver, r, now)
	suite.Require().NoError(err)
	suite.Require().NoError(r.AssignJob(assignment))
	suite.Require().NoError(suite.repository.Update(ctx, r))

	loaded, err := suite.repository.Get(ctx, requestID)
	suite.Require().NoError(err)
	return loaded
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) createFleet(
	transporterID kernel.UUID,
) (*transporter.Vehicle, *transporter.Driver) {
	vehicle, err := transporter.NewVehicle(kernel.NewUUID(), transporterID, transporter.VehicleDetails{
		RegistrationNumber: "DHAKA METRO-TA-" + kernel.NewUUID().String()[:8],
		Type:               transporter.CoveredVan,
		CapacityTon:        decimal.NewFromInt(5),
		FitnessExpiry:      now.AddDate(1, 0, 0),
	})
	suite.Require().NoError(err)

	driver, err := transporter.NewDriver(kernel.NewUUID(), transporterID, transporter.DriverDetails{
		FullName:      "Abdul Karim",
		Phone:         "+8801711000111",
		LicenseNumber: "DK" + kernel.NewUUID().String()[:8],
		LicenseExpiry: now.AddDate(2, 0, 0),
		NIDNumber:     "1985123456789",
	})
	suite.Require().NoError(err)

	return vehicle, driver
}

func (suite *TransportRequestRepositoryIntegrationTestSuite) assertAssignmentCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&requestrepo.JobAssignmentDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func bdt(amount string) kernel.Money {
	return kernel.MustNewMoney(decimal.RequireFromString(amount), kernel.CurrencyBDT)
}
