package delivery

import (
	"fmt"

	"delivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with an explicit transition table so the legal
// state changes can be inspected and tested independently of storage and
// transport.
//
// State transitions:
//
//	READY ──start──> SHIPPED ──complete──> DELIVERED
//	  │
//	  └───cancel──> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ready is the initial status of a newly created delivery,
	// waiting for payment confirmation before shipping.
	Ready

	// Shipped indicates the physical shipment is underway.
	Shipped

	// Delivered indicates the shipment reached its destination. Terminal.
	Delivered

	// Cancelled indicates the delivery was compensated away before shipping. Terminal.
	Cancelled
)

// Transition identifies an attempted state change in the transition table.
type Transition int

const (
	// TransitionStart moves a delivery into Shipped.
	TransitionStart Transition = iota

	// TransitionComplete moves a delivery into Delivered.
	TransitionComplete

	// TransitionCancel moves a delivery into Cancelled.
	TransitionCancel
)

// transitionTable is the single source of truth for legal status changes.
// Anything absent from it is an invalid transition.
var transitionTable = map[Status]map[Transition]Status{
	Ready: {
		TransitionStart:  Shipped,
		TransitionCancel: Cancelled,
	},
	Shipped: {
		TransitionComplete: Delivered,
	},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Ready:     "READY",
		Shipped:   "SHIPPED",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Ready:     "READY",
		Shipped:   "SHIPPED",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses the persisted/wire form of a status.
// Returns an error for anything outside the four valid statuses.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the four valid statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the uppercase wire/persistence form of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Apply is the pure transition function (currentStatus, transition) -> newStatus.
// It returns an InvalidTransitionError for any pair the transition table does
// not allow, leaving the caller's state untouched.
func (s Status) Apply(t Transition) (Status, error) {
	if next, ok := transitionTable[s][t]; ok {
		return next, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), t.String())
}

// String returns a short lowercase name for the transition, used in error messages.
func (t Transition) String() string {
	switch t {
	case TransitionStart:
		return "start"
	case TransitionComplete:
		return "complete"
	case TransitionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
