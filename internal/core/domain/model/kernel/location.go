package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound valid latitudes in decimal degrees.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable geographic point together with its administrative address
// (division, district, thana/upazila, postal code, free-text address line).
//
// Location has no identity: two locations are equal when every field is equal, so the
// == operator and IsEqual agree. The zero value is invalid.
//
// Example:
//
//	pickup, err := kernel.NewLocation(23.8103, 90.4125, "Dhaka", "Dhaka", "Gulshan", "1212", "Road 11, House 7")
//	if err != nil {
//	    return err
//	}
//	drop, _ := kernel.NewLocation(22.3569, 91.7832, "Chattogram", "Chattogram", "Double Mooring", "4100", "Agrabad C/A")
//	km, _ := pickup.DistanceKm(drop) // ~213.95
type Location struct { //nolint:recvcheck //using for validation
	latitude   float64
	longitude  float64
	division   string
	district   string
	thana      string
	postalCode string
	address    string

	guard guard.ConstructorGuard
}

// NewLocation creates a validated Location.
//
// Validation rules:
//   - latitude must be within [MinLatitude, MaxLatitude], longitude within [MinLongitude, MaxLongitude]
//   - division, district, thana, and address are required (surrounding whitespace is trimmed)
//   - postalCode is optional
//
// All violations are reported together, joined with errors.Join.
func NewLocation(
	latitude, longitude float64,
	division, district, thana, postalCode, address string,
) (Location, error) {
	loc := Location{
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setLatitude(latitude),
		loc.setLongitude(longitude),
		setRequiredText(&loc.division, "division", division),
		setRequiredText(&loc.district, "district", district),
		setRequiredText(&loc.thana, "thana", thana),
		setRequiredText(&loc.address, "address", address),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate returns ErrLocationIsNotConstructed if the location was not created by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) Division() string {
	return l.division
}

func (l Location) District() string {
	return l.district
}

func (l Location) Thana() string {
	return l.thana
}

func (l Location) PostalCode() string {
	return l.postalCode
}

func (l Location) Address() string {
	return l.address
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f %s, %s, %s)", l.latitude, l.longitude, l.address, l.thana, l.district)
}

// IsEqual compares two locations structurally. Both must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceKm returns the great-circle distance to other in kilometers using the haversine
// formula. The result is non-negative and symmetric in its arguments.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return haversineKm(l.latitude, l.longitude, other.latitude, other.longitude), nil
}

// IsWithinRadiusOf reports whether other lies at most radiusKm away (boundary inclusive).
func (l Location) IsWithinRadiusOf(other Location, radiusKm float64) (bool, error) {
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"radius", fmt.Errorf("%v is not a non-negative number of kilometers", radiusKm))
	}

	distance, err := l.DistanceKm(other)
	if err != nil {
		return false, err
	}

	return distance <= radiusKm, nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func setRequiredText(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}

	*dst = value
	return nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// rounding can push a a hair outside [0, 1] for antipodal points
	a = math.Min(1, math.Max(0, a))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
