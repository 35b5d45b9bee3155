package queries

import (
	"context"
	"math"
	"slices"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// kmPerDegreeLatitude is a lower bound, so the bounding box never cuts off a match.
const kmPerDegreeLatitude = 110.5

type GetNearbyOpenRequestsQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetNearbyOpenRequestsQueryHandler(db *gorm.DB, clock kernel.Clock) GetNearbyOpenRequestsQueryHandler {
	return GetNearbyOpenRequestsQueryHandler{db: db, clock: clock}
}

// Handle narrows candidates with a latitude/longitude box in SQL, then keeps those whose
// haversine distance is within the radius (boundary inclusive). Results are nearest first.
func (h GetNearbyOpenRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyOpenRequestsQuery,
) ([]GetNearbyOpenRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	center := query.Location()
	minLat, maxLat, minLng, maxLng := boundingBox(center, query.RadiusKm())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.status,
			r.scheduled_time,
			r.pickup_latitude, r.pickup_longitude, r.pickup_division, r.pickup_district,
			r.pickup_thana, r.pickup_postal_code, r.pickup_address,
			r.drop_latitude, r.drop_longitude, r.drop_division, r.drop_district,
			r.drop_thana, r.drop_postal_code, r.drop_address,
			r.goods_type,
			r.weight_kg,
			(SELECT count(*) FROM transport_bids b WHERE b.request_id = r.id AND b.status = ?) AS bid_count
		FROM transport_requests r
		WHERE r.status IN ?
			AND r.scheduled_time > ?
			AND r.pickup_latitude BETWEEN ? AND ?
			AND r.pickup_longitude BETWEEN ? AND ?
	`,
		int(request.BidPending),
		[]int{int(request.Open), int(request.Bidding)},
		h.clock.Now(),
		minLat, maxLat,
		minLng, maxLng,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]GetNearbyOpenRequestsQueryResponse, 0)
	for rows.Next() {
		var (
			item         GetNearbyOpenRequestsQueryResponse
			id           uuid.UUID
			status       int
			pickup, drop locationColumns
		)

		err = rows.Scan(
			&id,
			&status,
			&item.ScheduledTime,
			&pickup.latitude, &pickup.longitude, &pickup.division, &pickup.district,
			&pickup.thana, &pickup.postalCode, &pickup.address,
			&drop.latitude, &drop.longitude, &drop.division, &drop.district,
			&drop.thana, &drop.postalCode, &drop.address,
			&item.GoodsType,
			&item.WeightKg,
			&item.BidCount,
		)
		if err != nil {
			return nil, err
		}

		if item.Pickup, err = pickup.toLocation(); err != nil {
			return nil, err
		}

		if item.DistanceKm, err = center.DistanceKm(item.Pickup); err != nil {
			return nil, err
		}
		if item.DistanceKm > query.RadiusKm() {
			continue
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.Drop, err = drop.toLocation(); err != nil {
			return nil, err
		}
		item.Status = request.Status(status).String()

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b GetNearbyOpenRequestsQueryResponse) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return a.ScheduledTime.Compare(b.ScheduledTime)
		}
	})

	return result, nil
}

// boundingBox returns a box that contains every point within radiusKm of center. Near the
// poles, or when the box would wrap the antimeridian, longitude is left unbounded.
func boundingBox(center kernel.Location, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / kmPerDegreeLatitude
	minLat = math.Max(kernel.MinLatitude, center.Latitude()-latDelta)
	maxLat = math.Min(kernel.MaxLatitude, center.Latitude()+latDelta)

	minLng, maxLng = kernel.MinLongitude, kernel.MaxLongitude

	cos := math.Cos(math.Max(math.Abs(minLat), math.Abs(maxLat)) * math.Pi / 180)
	if cos < 0.01 {
		return minLat, maxLat, minLng, maxLng
	}

	lngDelta := radiusKm / (kmPerDegreeLatitude * cos)
	if center.Longitude()-lngDelta < kernel.MinLongitude || center.Longitude()+lngDelta > kernel.MaxLongitude {
		return minLat, maxLat, minLng, maxLng
	}

	return minLat, maxLat, center.Longitude() - lngDelta, center.Longitude() + lngDelta
}
