// Package guard provides the ConstructorGuard used by value objects, entities,
// commands, and queries to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was produced by its constructor.
// The zero value is "not constructed", so a struct literal of the enclosing type fails
// validation.
//
// Example:
//
//	type Money struct {
//	    amount decimal.Decimal
//	    guard  guard.ConstructorGuard
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
