package kernel

import (
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the
// constructor functions. It is returned when validating a zero-value (nil) UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for every aggregate and entity in the marketplace:
// transport requests, bids, job assignments, transporter profiles, drivers, and vehicles.
// It wraps github.com/google/uuid.
//
// The zero value is the nil UUID and fails Validate, which is how "empty id" is detected
// by every factory in the domain.
//
// Example:
//
//	requestID := kernel.NewUUID()
//
//	bidID, err := kernel.UUIDFromString(c.Param("bidId"))
//	if err != nil {
//	    return err // validation error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from any representation accepted by uuid.Parse
// (canonical, braced, urn-prefixed, or without hyphens). Malformed input and the
// nil UUID are reported as validation errors.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}

	return parsed, nil
}

// UUIDFromBytes restores a UUID from its 16-byte form, as stored by the repositories.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}

	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}

	return restored, nil
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID (a [16]byte array, copied by value).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
