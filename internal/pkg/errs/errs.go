package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every malformed-input error kind
	// (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError).
	ErrValidation = errors.New("validation failed")

	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrResourceUnavailable = errors.New("resource is unavailable")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
)

// ObjectNotFoundError reports that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsOutOfRangeError reports a value outside of the inclusive [Min, Max] range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Is(target error) bool {
	return target == ErrValidation
}

// VersionIsInvalidError reports an optimistic concurrency conflict: the stored
// aggregate version no longer matches the version the caller loaded.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateError reports an operation attempted from a state that does not permit it.
// Current and Attempted carry the state names.
type InvalidStateError struct {
	Entity    string
	Current   string
	Attempted string
}

func NewInvalidStateError(entity, current, attempted string) *InvalidStateError {
	return &InvalidStateError{
		Entity:    entity,
		Current:   current,
		Attempted: attempted,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidState, e.Entity, e.Current, e.Attempted)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ResourceUnavailableError reports a driver or vehicle that failed an availability
// check. Callers usually retry with a different resource.
type ResourceUnavailableError struct {
	Resource string
	ID       any
	Reason   string
	Cause    error
}

func NewResourceUnavailableError(resource string, id any, reason string) *ResourceUnavailableError {
	return &ResourceUnavailableError{
		Resource: resource,
		ID:       id,
		Reason:   reason,
	}
}

func NewResourceUnavailableErrorWithCause(
	resource string,
	id any,
	reason string,
	cause error,
) *ResourceUnavailableError {
	return &ResourceUnavailableError{
		Resource: resource,
		ID:       id,
		Reason:   reason,
		Cause:    cause,
	}
}

func (e *ResourceUnavailableError) Error() string {
	msg := fmt.Sprintf("%s: %s %v (reason: %s)", ErrResourceUnavailable, e.Resource, e.ID, e.Reason)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ResourceUnavailableError) Unwrap() error {
	return ErrResourceUnavailable
}

// Retryable is always true: another resource may pass the same check.
func (e *ResourceUnavailableError) Retryable() bool {
	return true
}

// CapacityExceededError reports a vehicle whose tonnage cannot carry the requested weight.
type CapacityExceededError struct {
	VehicleID   any
	WeightKg    any
	CapacityTon any
}

func NewCapacityExceededError(vehicleID, weightKg, capacityTon any) *CapacityExceededError {
	return &CapacityExceededError{
		VehicleID:   vehicleID,
		WeightKg:    weightKg,
		CapacityTon: capacityTon,
	}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: vehicle %v cannot carry %v kg, capacity is %v t",
		ErrCapacityExceeded, e.VehicleID, e.WeightKg, e.CapacityTon)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// IsRetryable reports whether err carries a failure that the caller may retry
// with different input, such as another driver or vehicle.
func IsRetryable(err error) bool {
	var retryable interface{ Retryable() bool }
	if errors.As(err, &retryable) {
		return retryable.Retryable()
	}
	return false
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}
