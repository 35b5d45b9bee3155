package transporter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle was not created via NewVehicle or RestoreVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

var kgPerTon = decimal.NewFromInt(1000)

// VehicleDetails carries registration and certification data of a vehicle.
type VehicleDetails struct {
	RegistrationNumber string
	Type               VehicleType
	CapacityTon        decimal.Decimal
	FitnessExpiry      time.Time
	DocumentRefs       []string
}

// Vehicle is a truck, van, or trailer owned by a transporter. Vehicles belong to the
// TransporterProfile aggregate.
type Vehicle struct {
	id            kernel.UUID
	transporterID kernel.UUID
	details       VehicleDetails
	status        VehicleStatus

	isConstructed bool
}

// NewVehicle registers a new Active vehicle. Capacity must be positive.
func NewVehicle(id, transporterID kernel.UUID, details VehicleDetails) (*Vehicle, error) {
	return RestoreVehicle(id, transporterID, details, VehicleActive)
}

// RestoreVehicle rebuilds a vehicle from persistence.
func RestoreVehicle(id, transporterID kernel.UUID, details VehicleDetails, status VehicleStatus) (*Vehicle, error) {
	v := &Vehicle{isConstructed: true}

	if err := errors.Join(
		v.setIDs(id, transporterID),
		v.setDetails(details),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) TransporterID() kernel.UUID {
	return v.transporterID
}

func (v *Vehicle) RegistrationNumber() string {
	return v.details.RegistrationNumber
}

func (v *Vehicle) Type() VehicleType {
	return v.details.Type
}

func (v *Vehicle) CapacityTon() decimal.Decimal {
	return v.details.CapacityTon
}

func (v *Vehicle) FitnessExpiry() time.Time {
	return v.details.FitnessExpiry
}

// DocumentRefs returns a copy of the document references.
func (v *Vehicle) DocumentRefs() []string {
	return slices.Clone(v.details.DocumentRefs)
}

func (v *Vehicle) Status() VehicleStatus {
	return v.status
}

// IsFitnessExpired reports whether the fitness certificate expiry lies before now.
func (v *Vehicle) IsFitnessExpired(now time.Time) bool {
	return now.After(v.details.FitnessExpiry)
}

// IsAvailableForAssignment reports whether the vehicle is Active with a valid fitness
// certificate at now.
func (v *Vehicle) IsAvailableForAssignment(now time.Time) bool {
	return v.UnavailabilityReason(now) == ""
}

// UnavailabilityReason explains why the vehicle cannot be assigned at now,
// or returns "" when the vehicle is available.
func (v *Vehicle) UnavailabilityReason(now time.Time) string {
	switch {
	case v.status != VehicleActive:
		return "vehicle is " + strings.ToLower(v.status.String())
	case v.IsFitnessExpired(now):
		return "fitness certificate expired on " + v.details.FitnessExpiry.Format(time.DateOnly)
	default:
		return ""
	}
}

// CanCarryWeight reports whether weightKg/1000 <= capacity in tons. The comparison is
// done as weightKg <= capacity*1000 in decimal arithmetic, so nothing is rounded and
// the boundary is inclusive.
func (v *Vehicle) CanCarryWeight(weightKg decimal.Decimal) bool {
	return weightKg.LessThanOrEqual(v.details.CapacityTon.Mul(kgPerTon))
}

func (v *Vehicle) MarkInTrip() error {
	return v.transition(v.status.MarkInTrip)
}

func (v *Vehicle) Release() error {
	return v.transition(v.status.Release)
}

func (v *Vehicle) SendToMaintenance() error {
	return v.transition(v.status.SendToMaintenance)
}

func (v *Vehicle) ReturnFromMaintenance() error {
	return v.transition(v.status.ReturnFromMaintenance)
}

func (v *Vehicle) Deactivate() error {
	return v.transition(v.status.Deactivate)
}

func (v *Vehicle) Reactivate() error {
	return v.transition(v.status.Reactivate)
}

// RenewFitness records a renewed fitness certificate. The new expiry must be later
// than the current one.
func (v *Vehicle) RenewFitness(expiry time.Time, documentRef string) error {
	if !expiry.After(v.details.FitnessExpiry) {
		return errs.NewValueIsInvalidError("fitness expiry must be later than the current expiry")
	}

	v.details.FitnessExpiry = expiry.UTC()
	if documentRef = strings.TrimSpace(documentRef); documentRef != "" {
		v.details.DocumentRefs = append(v.details.DocumentRefs, documentRef)
	}
	return nil
}

func (v *Vehicle) transition(next func() (VehicleStatus, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	v.status = status
	return nil
}

func (v *Vehicle) setIDs(id, transporterID kernel.UUID) error {
	if err := errors.Join(id.Validate(), transporterID.Validate()); err != nil {
		return err
	}
	v.id = id
	v.transporterID = transporterID
	return nil
}

func (v *Vehicle) setDetails(details VehicleDetails) error {
	details.RegistrationNumber = strings.TrimSpace(details.RegistrationNumber)

	var errList []error
	if details.RegistrationNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("registration number"))
	}
	if err := details.Type.Validate(); err != nil {
		errList = append(errList, err)
	}
	if !details.CapacityTon.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"capacity", fmt.Errorf("%s t is not greater than 0", details.CapacityTon.String())))
	}
	if details.FitnessExpiry.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("fitness expiry"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	details.FitnessExpiry = details.FitnessExpiry.UTC()
	details.DocumentRefs = slices.Clone(details.DocumentRefs)
	v.details = details
	return nil
}

func (v *Vehicle) setStatus(status VehicleStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}
