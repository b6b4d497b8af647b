// Package guard provides the constructor-guard pattern used by value objects,
// commands, and queries across the codebase. Embedding a ConstructorGuard in a
// struct makes a zero-value instance detectable, so code paths that require a
// properly constructed object can reject values that bypassed the factory
// function.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied and the object was not built through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether the embedding object went through its
// designated constructor. The zero value is "not constructed" and fails
// validation, which is exactly what makes the pattern work.
//
// Example:
//
//	type ClaimDeliveryCommand struct {
//	    deliveryID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewClaimDeliveryCommand(id kernel.UUID) (ClaimDeliveryCommand, error) {
//	    ...
//	    return ClaimDeliveryCommand{deliveryID: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ClaimDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the "constructed" state. Call it only
// from the constructor of the embedding object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
