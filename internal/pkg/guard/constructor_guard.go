// Package guard holds the constructor guard shared by value objects,
// aggregates, commands and queries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Embed it and call
// Validate from the owner's Validate method: the zero value fails.
//
// Example:
//
//	type CreateTripCommand struct {
//	    tripID kernel.TripID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c CreateTripCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced by ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
