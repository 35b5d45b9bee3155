package transporter

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// TransporterType distinguishes a single owner-operator from a fleet company.
type TransporterType int

const (
	TransporterTypeUnknown TransporterType = iota
	Individual
	Agency
)

func getTransporterTypeStrings() map[TransporterType]string {
	return map[TransporterType]string{
		TransporterTypeUnknown: "Unknown",
		Individual:             "Individual",
		Agency:                 "Agency",
	}
}

func (t TransporterType) String() string {
	if str, ok := getTransporterTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

func (t TransporterType) Validate() error {
	if t != Individual && t != Agency {
		return errs.NewValueIsInvalidErrorWithCause("transporter type", fmt.Errorf("%d is not a valid type", t))
	}
	return nil
}

// ParseTransporterType accepts the String() form, case-insensitively.
func ParseTransporterType(s string) (TransporterType, error) {
	for t, str := range getTransporterTypeStrings() {
		if t != TransporterTypeUnknown && strings.EqualFold(str, s) {
			return t, nil
		}
	}
	return TransporterTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transporter type", fmt.Errorf("%q is not a valid type", s))
}

// VehicleType is the body type of a vehicle.
type VehicleType int

const (
	VehicleTypeUnknown VehicleType = iota
	Pickup
	CoveredVan
	OpenTruck
	Trailer
	Refrigerated
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleTypeUnknown: "Unknown",
		Pickup:             "Pickup",
		CoveredVan:         "CoveredVan",
		OpenTruck:          "OpenTruck",
		Trailer:            "Trailer",
		Refrigerated:       "Refrigerated",
	}
}

func (t VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

func (t VehicleType) Validate() error {
	if t <= VehicleTypeUnknown || t > Refrigerated {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%d is not a valid type", t))
	}
	return nil
}

// ParseVehicleType accepts the String() form, case-insensitively.
func ParseVehicleType(s string) (VehicleType, error) {
	for t, str := range getVehicleTypeStrings() {
		if t != VehicleTypeUnknown && strings.EqualFold(str, s) {
			return t, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle type", fmt.Errorf("%q is not a valid type", s))
}
