package transporter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// DefaultServiceRadiusKm is the service radius of a newly registered transporter.
	DefaultServiceRadiusKm = 50.0

	// MaxRating is the upper bound of the rating scale; the lower bound is 0.
	MaxRating = 5
)

var ErrTransporterProfileIsNotConstructed = errors.New(
	"TransporterProfile must be created via NewTransporterProfile or RestoreTransporterProfile")

// ProfileDetails carries the descriptive data of a transporter.
type ProfileDetails struct {
	DisplayName        string
	ContactNumber      string
	Type               TransporterType
	TradeLicenseNumber string // optional
	BaseLocation       kernel.Location
}

// TransporterProfile is the aggregate root for a transport company or an individual
// owner-operator. It owns the transporter's drivers and vehicles; a driver or vehicle
// status change is saved together with the profile under its optimistic-concurrency
// version.
//
// Invariants:
//   - every owned driver and vehicle belongs to this transporter
//   - driver ids and license numbers are unique within the profile
//   - vehicle ids and registration numbers are unique within the profile
//   - the service radius is positive, the rating lies in [0, MaxRating]
type TransporterProfile struct {
	id              kernel.UUID
	userID          kernel.UUID
	details         ProfileDetails
	serviceRadiusKm float64
	verified        bool
	rating          decimal.Decimal
	completedJobs   int
	drivers         []*Driver
	vehicles        []*Vehicle
	version         int

	isConstructed bool
}

// NewTransporterProfile creates an unverified profile with the default service radius,
// a zero rating, and no drivers or vehicles. userID references the identity service.
func NewTransporterProfile(id, userID kernel.UUID, details ProfileDetails) (*TransporterProfile, error) {
	p := &TransporterProfile{
		serviceRadiusKm: DefaultServiceRadiusKm,
		rating:          decimal.Zero,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.setIDs(id, userID),
		p.setDetails(details),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreTransporterProfile rebuilds a profile and its fleet from persistence.
func RestoreTransporterProfile(
	id, userID kernel.UUID,
	details ProfileDetails,
	serviceRadiusKm float64,
	verified bool,
	rating decimal.Decimal,
	completedJobs int,
	drivers []*Driver,
	vehicles []*Vehicle,
	version int,
) (*TransporterProfile, error) {
	p := &TransporterProfile{
		verified:      verified,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setIDs(id, userID),
		p.setDetails(details),
		p.ChangeServiceRadius(serviceRadiusKm),
		p.UpdateRating(rating),
		p.setCompletedJobs(completedJobs),
	); err != nil {
		return nil, err
	}

	for _, d := range drivers {
		if err := p.AddDriver(d); err != nil {
			return nil, err
		}
	}
	for _, v := range vehicles {
		if err := p.AddVehicle(v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *TransporterProfile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrTransporterProfileIsNotConstructed
	}
	return nil
}

func (p *TransporterProfile) ID() kernel.UUID {
	return p.id
}

func (p *TransporterProfile) UserID() kernel.UUID {
	return p.userID
}

func (p *TransporterProfile) DisplayName() string {
	return p.details.DisplayName
}

func (p *TransporterProfile) ContactNumber() string {
	return p.details.ContactNumber
}

func (p *TransporterProfile) Type() TransporterType {
	return p.details.Type
}

func (p *TransporterProfile) TradeLicenseNumber() string {
	return p.details.TradeLicenseNumber
}

func (p *TransporterProfile) BaseLocation() kernel.Location {
	return p.details.BaseLocation
}

func (p *TransporterProfile) ServiceRadiusKm() float64 {
	return p.serviceRadiusKm
}

func (p *TransporterProfile) IsVerified() bool {
	return p.verified
}

func (p *TransporterProfile) Rating() decimal.Decimal {
	return p.rating
}

func (p *TransporterProfile) CompletedJobs() int {
	return p.completedJobs
}

// Version is the optimistic-concurrency token the profile was loaded with.
func (p *TransporterProfile) Version() int {
	return p.version
}

// Drivers returns the owned drivers. The slice is a copy; the drivers are not.
func (p *TransporterProfile) Drivers() []*Driver {
	return append([]*Driver(nil), p.drivers...)
}

// Vehicles returns the owned vehicles. The slice is a copy; the vehicles are not.
func (p *TransporterProfile) Vehicles() []*Vehicle {
	return append([]*Vehicle(nil), p.vehicles...)
}

// Driver looks up an owned driver.
func (p *TransporterProfile) Driver(id kernel.UUID) (*Driver, error) {
	for _, d := range p.drivers {
		if d.ID().IsEqual(id) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("driver", id)
}

// Vehicle looks up an owned vehicle.
func (p *TransporterProfile) Vehicle(id kernel.UUID) (*Vehicle, error) {
	for _, v := range p.vehicles {
		if v.ID().IsEqual(id) {
			return v, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("vehicle", id)
}

// AddDriver attaches a driver registered for this transporter.
func (p *TransporterProfile) AddDriver(d *Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.TransporterID().IsEqual(p.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver", fmt.Errorf("driver %s belongs to transporter %s", d.ID(), d.TransporterID()))
	}
	for _, existing := range p.drivers {
		if existing.ID().IsEqual(d.ID()) || strings.EqualFold(existing.LicenseNumber(), d.LicenseNumber()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"driver", fmt.Errorf("driver %s or license %s is already registered", d.ID(), d.LicenseNumber()))
		}
	}

	p.drivers = append(p.drivers, d)
	return nil
}

// AddVehicle attaches a vehicle registered for this transporter.
func (p *TransporterProfile) AddVehicle(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if !v.TransporterID().IsEqual(p.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle", fmt.Errorf("vehicle %s belongs to transporter %s", v.ID(), v.TransporterID()))
	}
	for _, existing := range p.vehicles {
		if existing.ID().IsEqual(v.ID()) || strings.EqualFold(existing.RegistrationNumber(), v.RegistrationNumber()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"vehicle", fmt.Errorf("vehicle %s or registration %s is already registered", v.ID(), v.RegistrationNumber()))
		}
	}

	p.vehicles = append(p.vehicles, v)
	return nil
}

// Verify marks the profile as verified by an administrator.
func (p *TransporterProfile) Verify() error {
	if p.verified {
		return errs.NewInvalidStateError("transporter profile", "Verified", "Verified")
	}
	p.verified = true
	return nil
}

// RevokeVerification withdraws a previous verification.
func (p *TransporterProfile) RevokeVerification() error {
	if !p.verified {
		return errs.NewInvalidStateError("transporter profile", "Unverified", "Unverified")
	}
	p.verified = false
	return nil
}

func (p *TransporterProfile) ChangeServiceRadius(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"service radius", fmt.Errorf("%v km is not greater than 0", km))
	}
	p.serviceRadiusKm = km
	return nil
}

func (p *TransporterProfile) UpdateRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(MaxRating)) {
		return errs.NewValueIsOutOfRangeError("rating", rating.String(), 0, MaxRating)
	}
	p.rating = rating
	return nil
}

// RecordCompletedJob increments the completed-job counter.
func (p *TransporterProfile) RecordCompletedJob() {
	p.completedJobs++
}

// DispatchVehicle marks an owned vehicle as InTrip. The persisted profile version makes
// this a compare-and-swap: a concurrent dispatch of the same vehicle loses on save.
func (p *TransporterProfile) DispatchVehicle(vehicleID kernel.UUID) error {
	v, err := p.Vehicle(vehicleID)
	if err != nil {
		return err
	}
	return v.MarkInTrip()
}

// ReleaseVehicle returns an InTrip vehicle to Active.
func (p *TransporterProfile) ReleaseVehicle(vehicleID kernel.UUID) error {
	v, err := p.Vehicle(vehicleID)
	if err != nil {
		return err
	}
	return v.Release()
}

// CanServe reports whether the transporter is verified and loc lies within its service
// radius around the base location.
func (p *TransporterProfile) CanServe(loc kernel.Location) (bool, error) {
	if !p.verified {
		return false, nil
	}
	return p.details.BaseLocation.IsWithinRadiusOf(loc, p.serviceRadiusKm)
}

func (p *TransporterProfile) setIDs(id, userID kernel.UUID) error {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return err
	}
	p.id = id
	p.userID = userID
	return nil
}

func (p *TransporterProfile) setDetails(details ProfileDetails) error {
	details.DisplayName = strings.TrimSpace(details.DisplayName)
	details.ContactNumber = strings.TrimSpace(details.ContactNumber)
	details.TradeLicenseNumber = strings.TrimSpace(details.TradeLicenseNumber)

	var errList []error
	if details.DisplayName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("display name"))
	}
	if details.ContactNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("contact number"))
	}
	if err := details.Type.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := details.BaseLocation.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.details = details
	return nil
}

func (p *TransporterProfile) setCompletedJobs(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("completed jobs", fmt.Errorf("%d is negative", n))
	}
	p.completedJobs = n
	return nil
}
