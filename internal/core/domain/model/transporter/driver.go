package transporter

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver was not created via NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")

// DriverDetails carries the personal and licensing data of a driver.
type DriverDetails struct {
	FullName           string
	Phone              string
	LicenseNumber      string
	LicenseExpiry      time.Time
	LicenseDocumentRef string // optional
	NIDNumber          string
}

// Driver is a person employed by a transporter who can be bound to a job.
// Drivers belong to the TransporterProfile aggregate.
//
// Availability is a pure function of state and the supplied time: the driver must be
// Active and the license must not have expired. Callers re-evaluate it at the moment a
// job assignment is created.
type Driver struct {
	id            kernel.UUID
	transporterID kernel.UUID
	details       DriverDetails
	status        DriverStatus

	isConstructed bool
}

// NewDriver registers a new Active driver.
func NewDriver(id, transporterID kernel.UUID, details DriverDetails) (*Driver, error) {
	return RestoreDriver(id, transporterID, details, DriverActive)
}

// RestoreDriver rebuilds a driver from persistence.
func RestoreDriver(id, transporterID kernel.UUID, details DriverDetails, status DriverStatus) (*Driver, error) {
	d := &Driver{isConstructed: true}

	if err := errors.Join(
		d.setIDs(id, transporterID),
		d.setDetails(details),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) TransporterID() kernel.UUID {
	return d.transporterID
}

func (d *Driver) FullName() string {
	return d.details.FullName
}

func (d *Driver) Phone() string {
	return d.details.Phone
}

func (d *Driver) LicenseNumber() string {
	return d.details.LicenseNumber
}

func (d *Driver) LicenseExpiry() time.Time {
	return d.details.LicenseExpiry
}

func (d *Driver) LicenseDocumentRef() string {
	return d.details.LicenseDocumentRef
}

func (d *Driver) NIDNumber() string {
	return d.details.NIDNumber
}

func (d *Driver) Status() DriverStatus {
	return d.status
}

// IsLicenseExpired reports whether the license expiry lies before now.
func (d *Driver) IsLicenseExpired(now time.Time) bool {
	return now.After(d.details.LicenseExpiry)
}

// IsAvailableForAssignment reports whether the driver is Active with a valid license at now.
func (d *Driver) IsAvailableForAssignment(now time.Time) bool {
	return d.UnavailabilityReason(now) == ""
}

// UnavailabilityReason explains why the driver cannot be assigned at now,
// or returns "" when the driver is available.
func (d *Driver) UnavailabilityReason(now time.Time) string {
	switch {
	case d.status != DriverActive:
		return "driver is " + strings.ToLower(d.status.String())
	case d.IsLicenseExpired(now):
		return "driving license expired on " + d.details.LicenseExpiry.Format(time.DateOnly)
	default:
		return ""
	}
}

func (d *Driver) Suspend() error {
	return d.transition(d.status.Suspend)
}

func (d *Driver) Reinstate() error {
	return d.transition(d.status.Reinstate)
}

func (d *Driver) Deactivate() error {
	return d.transition(d.status.Deactivate)
}

// RenewLicense records a renewed license. The new expiry must be later than the current one.
func (d *Driver) RenewLicense(expiry time.Time, documentRef string) error {
	if !expiry.After(d.details.LicenseExpiry) {
		return errs.NewValueIsInvalidError("license expiry must be later than the current expiry")
	}

	d.details.LicenseExpiry = expiry.UTC()
	if documentRef = strings.TrimSpace(documentRef); documentRef != "" {
		d.details.LicenseDocumentRef = documentRef
	}
	return nil
}

func (d *Driver) transition(next func() (DriverStatus, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setIDs(id, transporterID kernel.UUID) error {
	if err := errors.Join(id.Validate(), transporterID.Validate()); err != nil {
		return err
	}
	d.id = id
	d.transporterID = transporterID
	return nil
}

func (d *Driver) setDetails(details DriverDetails) error {
	details.FullName = strings.TrimSpace(details.FullName)
	details.Phone = strings.TrimSpace(details.Phone)
	details.LicenseNumber = strings.TrimSpace(details.LicenseNumber)
	details.NIDNumber = strings.TrimSpace(details.NIDNumber)
	details.LicenseDocumentRef = strings.TrimSpace(details.LicenseDocumentRef)

	var errList []error
	if details.FullName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("full name"))
	}
	if details.Phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if details.LicenseNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("license number"))
	}
	if details.LicenseExpiry.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("license expiry"))
	}
	if details.NIDNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("NID number"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	details.LicenseExpiry = details.LicenseExpiry.UTC()
	d.details = details
	return nil
}

func (d *Driver) setStatus(status DriverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
