// Package guard provides the ConstructorGuard pattern used by domain value
// objects, entities, commands and queries to enforce construction through
// their designated constructor functions.
//
// A zero-value struct embedding a ConstructorGuard fails Validate, which
// makes "forgot to call the constructor" a detectable error instead of a
// silently invalid object.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes
// a nil validation error, so validation always fails with a meaningful
// message for improperly constructed objects.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor. Embed one as a private field and set it with
// NewConstructorGuard inside the constructor; the zero value fails Validate.
//
// Example:
//
//	type Fee struct {
//	    cents int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewFee(cents int) (Fee, error) {
//	    if cents < 0 {
//	        return Fee{}, errors.New("fee cannot be negative")
//	    }
//	    return Fee{cents: cents, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (f Fee) Validate() error {
//	    return f.guard.Validate(ErrFeeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero-value
// guards it returns validationError, or ErrDefaultConstructorGuard when
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
