package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when a nil
// error is passed as the validation error, so validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a guard in a struct makes a
// zero-value instance detectable: the internal flag is only set when the object
// goes through its constructor.
//
// Example:
//
//	type Delivery struct {
//	    orderID int64
//	    guard   kernel.ConstructorGuard
//	}
//
//	func NewDelivery(orderID int64) (*Delivery, error) {
//	    return &Delivery{orderID: orderID, guard: kernel.NewConstructorGuard()}, nil
//	}
//
//	func (d *Delivery) Validate() error {
//	    return d.guard.Validate(ErrDeliveryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// object it returns validationError, or ErrDefaultConstructorGuard when
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
