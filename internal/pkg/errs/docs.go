// Package errs provides standardized error types for the freight marketplace.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package groups its error types by kind:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//     (all of them match ErrValidation)
//   - InvalidStateError: an operation attempted from a state that does not permit it
//   - ObjectNotFoundError: a referenced object does not exist
//   - ResourceUnavailableError: a driver or vehicle failed an availability check (retryable)
//   - CapacityExceededError: a vehicle cannot carry the requested weight
//   - VersionIsInvalidError: an optimistic concurrency conflict on save
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions, with a WithCause variant where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is / errors.As support
package errs
