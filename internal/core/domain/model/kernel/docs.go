// Package kernel provides the shared domain primitives of the freight marketplace.
//
// The package includes:
//   - UUID: identifier value object for every aggregate and entity
//   - Location: geographic point plus Bangladeshi administrative address, with
//     haversine distance and radius membership
//   - Money: currency-tagged decimal amount (BDT)
//   - Clock: injectable source of the current time
//   - DomainEvent: contract implemented by every event an aggregate emits
//
// Value objects are created through validating constructors and carry a
// guard.ConstructorGuard, so a zero value or struct literal fails Validate.
package kernel
