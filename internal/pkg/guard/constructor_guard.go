// Package guard implements a defensive construction pattern that ensures
// value objects and entities are only created through their designated
// constructor functions. Embedding a ConstructorGuard in a struct makes a
// zero-value instance distinguishable from a properly constructed one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been built through its
// constructor. The zero value fails validation.
//
// Example:
//
//	type Money struct {
//	    amount   int
//	    currency string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int, currency string) (Money, error) {
//	    // validate inputs ...
//	    return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in every domain constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was built through its
// constructor, validationError otherwise. A nil validationError falls back
// to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
