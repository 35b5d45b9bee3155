package queries

import (
	"errors"
	"math"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxNearbyRadiusKm caps the search radius of GetNearbyOpenRequestsQuery.
const MaxNearbyRadiusKm = 500.0

var ErrGetNearbyOpenRequestsQueryIsNotConstructed = errors.New(
	"GetNearbyOpenRequestsQuery must be created via NewGetNearbyOpenRequestsQuery constructor",
)

// GetNearbyOpenRequestsQuery finds Open and Bidding requests, not yet past their scheduled
// time, whose pickup lies within radiusKm of a point. Transporters use it with their base
// location and service radius.
type GetNearbyOpenRequestsQuery struct {
	location kernel.Location
	radiusKm float64

	guard guard.ConstructorGuard
}

func NewGetNearbyOpenRequestsQuery(location kernel.Location, radiusKm float64) (GetNearbyOpenRequestsQuery, error) {
	if err := location.Validate(); err != nil {
		return GetNearbyOpenRequestsQuery{}, err
	}

	if math.IsNaN(radiusKm) || radiusKm <= 0 || radiusKm > MaxNearbyRadiusKm {
		return GetNearbyOpenRequestsQuery{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"radius km", radiusKm, 0, MaxNearbyRadiusKm, errors.New("radius must be greater than 0"))
	}

	return GetNearbyOpenRequestsQuery{
		location: location,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetNearbyOpenRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyOpenRequestsQueryIsNotConstructed)
}

func (q GetNearbyOpenRequestsQuery) Location() kernel.Location {
	return q.location
}

func (q GetNearbyOpenRequestsQuery) RadiusKm() float64 {
	return q.radiusKm
}

type GetNearbyOpenRequestsQueryResponse struct {
	ID            kernel.UUID
	Status        string
	ScheduledTime time.Time
	Pickup        kernel.Location
	Drop          kernel.Location
	GoodsType     string
	WeightKg      decimal.Decimal
	BidCount      int
	DistanceKm    float64
}
