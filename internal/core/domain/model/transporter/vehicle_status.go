package transporter

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// VehicleStatus is the operational state of a vehicle.
//
// State transitions:
//
//	Active ──MarkInTrip──> InTrip ──Release──> Active
//	Active ──SendToMaintenance──> Maintenance ──ReturnFromMaintenance──> Active
//	Active, Maintenance ──Deactivate──> Inactive ──Reactivate──> Active
//
// A vehicle in InTrip cannot be deactivated or sent to maintenance; it has to be
// released by completing or cancelling its job first.
type VehicleStatus int

const (
	VehicleStatusUnknown VehicleStatus = iota
	VehicleActive
	VehicleMaintenance
	VehicleInTrip
	VehicleInactive
)

func getVehicleStatusStrings() map[VehicleStatus]string {
	return map[VehicleStatus]string{
		VehicleStatusUnknown: "Unknown",
		VehicleActive:        "Active",
		VehicleMaintenance:   "Maintenance",
		VehicleInTrip:        "InTrip",
		VehicleInactive:      "Inactive",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s VehicleStatus) Validate() error {
	if s <= VehicleStatusUnknown || s > VehicleInactive {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s VehicleStatus) String() string {
	if str, ok := getVehicleStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s VehicleStatus) MarkInTrip() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleActive}, VehicleInTrip)
}

func (s VehicleStatus) Release() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleInTrip}, VehicleActive)
}

func (s VehicleStatus) SendToMaintenance() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleActive}, VehicleMaintenance)
}

func (s VehicleStatus) ReturnFromMaintenance() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleMaintenance}, VehicleActive)
}

func (s VehicleStatus) Deactivate() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleActive, VehicleMaintenance}, VehicleInactive)
}

func (s VehicleStatus) Reactivate() (VehicleStatus, error) {
	return s.move([]VehicleStatus{VehicleInactive}, VehicleActive)
}

func (s VehicleStatus) move(from []VehicleStatus, to VehicleStatus) (VehicleStatus, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return s, errs.NewInvalidStateError("vehicle", s.String(), to.String())
}
