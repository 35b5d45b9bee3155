package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.TransportRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.TransportRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) GetExpired(ctx context.Context, now time.Time) ([]*request.TransportRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.TransportRequest), args.Error(1)
}

type MockTransporterRepository struct{ mock.Mock }

func (m *MockTransporterRepository) Add(ctx context.Context, p *transporter.TransporterProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTransporterRepository) Update(ctx context.Context, p *transporter.TransporterProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTransporterRepository) Get(ctx context.Context, id kernel.UUID) (*transporter.TransporterProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transporter.TransporterProfile), args.Error(1)
}

func (m *MockTransporterRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*transporter.TransporterProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transporter.TransporterProfile), args.Error(1)
}

// MockUoW satisfies every unit-of-work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TransportRequestRepository() ports.TransportRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.TransportRequestRepository)
}

func (m *MockUoW) TransporterRepository() ports.TransporterRepository {
	args := m.Called()
	return args.Get(0).(ports.TransporterRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockTransporterUoWFactory struct{ mock.Mock }

func (m *MockTransporterUoWFactory) Create() commands.TransporterUoW {
	args := m.Called()
	return args.Get(0).(commands.TransporterUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var (
	now   = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock = kernel.FixedClock(now)
)

func location(t *testing.T, lat, lng float64, thana string) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng, "Dhaka", "Dhaka", thana, "1212", "Main road")
	require.NoError(t, err)
	return loc
}

func requestDetails(t *testing.T) request.Details {
	t.Helper()
	return request.Details{
		ScheduledTime: now.Add(48 * time.Hour),
		Pickup:        location(t, 23.8103, 90.4125, "Gulshan"),
		Drop:          location(t, 23.7465, 90.3760, "Dhanmondi"),
		GoodsType:     "electronics",
		WeightKg:      decimal.NewFromInt(2000),
	}
}

func bdt(amount int64) kernel.Money {
	return kernel.MustNewMoney(decimal.NewFromInt(amount), kernel.CurrencyBDT)
}

func openRequest(t *testing.T) *request.TransportRequest {
	t.Helper()
	r, _, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), requestDetails(t), now)
	require.NoError(t, err)
	return r
}

// verifiedProfile returns a verified transporter in Gulshan with one driver and one 3 t vehicle.
func verifiedProfile(t *testing.T) (*transporter.TransporterProfile, *transporter.Vehicle, *transporter.Driver) {
	t.Helper()
	p, err := transporter.NewTransporterProfile(kernel.NewUUID(), kernel.NewUUID(), transporter.ProfileDetails{
		DisplayName:   "Jamuna Carriers",
		ContactNumber: "+8801711222333",
		Type:          transporter.Agency,
		BaseLocation:  location(t, 23.8103, 90.4125, "Gulshan"),
	})
	require.NoError(t, err)
	require.NoError(t, p.Verify())

	v, err := transporter.NewVehicle(kernel.NewUUID(), p.ID(), transporter.VehicleDetails{
		RegistrationNumber: "DHAKA METRO-TA-14-0001",
		Type:               transporter.OpenTruck,
		CapacityTon:        decimal.NewFromInt(3),
		FitnessExpiry:      now.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	require.NoError(t, p.AddVehicle(v))

	d, err := transporter.NewDriver(kernel.NewUUID(), p.ID(), transporter.DriverDetails{
		FullName:      "Shafiqul Islam",
		Phone:         "+8801911444555",
		LicenseNumber: "DK0555555CL0005",
		LicenseExpiry: now.AddDate(2, 0, 0),
		NIDNumber:     "1988123456789",
	})
	require.NoError(t, err)
	require.NoError(t, p.AddDriver(d))

	return p, v, d
}

// confirmedRequest returns a request whose winning bid belongs to p.
func confirmedRequest(t *testing.T, p *transporter.TransporterProfile) *request.TransportRequest {
	t.Helper()
	r := openRequest(t)
	bid, _, err := r.SubmitBid(p.ID(), bdt(4500), "", now)
	require.NoError(t, err)
	_, err = r.AcceptBid(bid.ID(), now)
	require.NoError(t, err)
	return r
}
