package transporter

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// DriverStatus is the operational state of a driver.
//
//	Active ──Suspend──> Suspended ──Reinstate──> Active
//	Active, Suspended ──Deactivate──> Inactive ──Reinstate──> Active
type DriverStatus int

const (
	DriverStatusUnknown DriverStatus = iota
	DriverActive
	DriverSuspended
	DriverInactive
)

func getDriverStatusStrings() map[DriverStatus]string {
	return map[DriverStatus]string{
		DriverStatusUnknown: "Unknown",
		DriverActive:        "Active",
		DriverSuspended:     "Suspended",
		DriverInactive:      "Inactive",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s DriverStatus) Validate() error {
	if s <= DriverStatusUnknown || s > DriverInactive {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s DriverStatus) String() string {
	if str, ok := getDriverStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Suspend moves an Active driver to Suspended.
func (s DriverStatus) Suspend() (DriverStatus, error) {
	if s != DriverActive {
		return s, s.transitionError(DriverSuspended)
	}
	return DriverSuspended, nil
}

// Reinstate returns a Suspended or Inactive driver to Active.
func (s DriverStatus) Reinstate() (DriverStatus, error) {
	if s != DriverSuspended && s != DriverInactive {
		return s, s.transitionError(DriverActive)
	}
	return DriverActive, nil
}

// Deactivate retires an Active or Suspended driver.
func (s DriverStatus) Deactivate() (DriverStatus, error) {
	if s != DriverActive && s != DriverSuspended {
		return s, s.transitionError(DriverInactive)
	}
	return DriverInactive, nil
}

func (s DriverStatus) transitionError(target DriverStatus) error {
	return errs.NewInvalidStateError("driver", s.String(), target.String())
}
