package request

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"
)

var ErrJobAssignmentIsNotConstructed = errors.New("JobAssignment must be created via NewJobAssignment or RestoreJobAssignment")

// JobAssignment binds one vehicle and one driver to a confirmed TransportRequest.
type JobAssignment struct {
	id         kernel.UUID
	requestID  kernel.UUID
	vehicleID  kernel.UUID
	driverID   kernel.UUID
	assignedAt time.Time

	isConstructed bool
}

// NewJobAssignment validates the vehicle and driver against the request at time now.
//
// Checks run in a fixed order and stop at the first failing group:
//  1. identifiers and entities must be present and consistent (validation error)
//  2. vehicle, then driver, must be available (errs.ResourceUnavailableError, retryable)
//  3. the vehicle must carry the request weight (errs.CapacityExceededError)
//
// Availability is evaluated here and never cached.
func NewJobAssignment(
	requestID, vehicleID, driverID kernel.UUID,
	vehicle *transporter.Vehicle,
	driver *transporter.Driver,
	req *TransportRequest,
	now time.Time,
) (*JobAssignment, error) {
	if err := validateAssignmentInputs(requestID, vehicleID, driverID, vehicle, driver, req); err != nil {
		return nil, err
	}

	if !vehicle.IsAvailableForAssignment(now) {
		return nil, errs.NewResourceUnavailableError("vehicle", vehicleID.String(), vehicle.UnavailabilityReason(now))
	}
	if !driver.IsAvailableForAssignment(now) {
		return nil, errs.NewResourceUnavailableError("driver", driverID.String(), driver.UnavailabilityReason(now))
	}

	weightKg := req.WeightKg()
	if !vehicle.CanCarryWeight(weightKg) {
		return nil, errs.NewCapacityExceededError(vehicleID.String(), weightKg.String(), vehicle.CapacityTon().String())
	}

	return RestoreJobAssignment(kernel.NewUUID(), requestID, vehicleID, driverID, now)
}

// RestoreJobAssignment rebuilds an assignment from persistence without re-running the
// availability checks.
func RestoreJobAssignment(id, requestID, vehicleID, driverID kernel.UUID, assignedAt time.Time) (*JobAssignment, error) {
	if err := errors.Join(id.Validate(), requestID.Validate(), vehicleID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assigned at")
	}

	return &JobAssignment{
		id:            id,
		requestID:     requestID,
		vehicleID:     vehicleID,
		driverID:      driverID,
		assignedAt:    assignedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (a *JobAssignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrJobAssignmentIsNotConstructed
	}
	return nil
}

// IsValid reports whether the assignment was constructed and carries every reference.
func (a *JobAssignment) IsValid() bool {
	if a.Validate() != nil {
		return false
	}
	return errors.Join(a.id.Validate(), a.requestID.Validate(), a.vehicleID.Validate(), a.driverID.Validate()) == nil &&
		!a.assignedAt.IsZero()
}

func (a *JobAssignment) ID() kernel.UUID {
	return a.id
}

func (a *JobAssignment) RequestID() kernel.UUID {
	return a.requestID
}

func (a *JobAssignment) VehicleID() kernel.UUID {
	return a.vehicleID
}

func (a *JobAssignment) DriverID() kernel.UUID {
	return a.driverID
}

func (a *JobAssignment) AssignedAt() time.Time {
	return a.assignedAt
}

func validateAssignmentInputs(
	requestID, vehicleID, driverID kernel.UUID,
	vehicle *transporter.Vehicle,
	driver *transporter.Driver,
	req *TransportRequest,
) error {
	if err := errors.Join(
		requestID.Validate(),
		vehicleID.Validate(),
		driverID.Validate(),
		vehicle.Validate(),
		driver.Validate(),
		req.Validate(),
	); err != nil {
		return err
	}

	var errList []error
	if !vehicle.ID().IsEqual(vehicleID) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("vehicle %s does not match id %s", vehicle.ID(), vehicleID)))
	}
	if !driver.ID().IsEqual(driverID) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("driver %s does not match id %s", driver.ID(), driverID)))
	}
	if !req.ID().IsEqual(requestID) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("transport request",
			fmt.Errorf("request %s does not match id %s", req.ID(), requestID)))
	}
	if !vehicle.TransporterID().IsEqual(driver.TransporterID()) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("driver %s and vehicle %s belong to different transporters", driverID, vehicleID)))
	}
	if winner := req.WinningBid(); winner != nil && !winner.TransporterID().IsEqual(vehicle.TransporterID()) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("vehicle %s does not belong to winning transporter %s", vehicleID, winner.TransporterID())))
	}
	return errors.Join(errList...)
}
