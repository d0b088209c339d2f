package order

import (
	"errors"
	"fmt"

	"agromarket/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status is not reachable
// from the current status for the acting party. The order is left unchanged.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// Status represents the lifecycle state of an order. It implements a state
// machine with role-gated transitions to ensure orders follow the correct
// business workflow.
//
// State transitions (seller unless noted):
//
//	Pending ──┬──> Confirmed ──┬──> InTransit ──> Delivered
//	          │                │
//	          └──> Cancelled <─┘
//	    (buyer may cancel a Pending order)
//
// Delivered, Cancelled and Returned are terminal. Returned exists as a
// retained terminal state for the returns flow; no transition in this core
// produces it.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	// Orders in this status are waiting for the seller's confirmation.
	Pending

	// Confirmed indicates the seller has accepted the order and may have
	// committed to an expected delivery date.
	Confirmed

	// InTransit indicates the order has been shipped.
	InTransit

	// Delivered indicates the order reached the buyer. Terminal.
	Delivered

	// Cancelled indicates the order was called off before shipment
	// completed. Terminal; the order row is retained.
	Cancelled

	// Returned indicates a delivered order was sent back. Terminal.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Returned:  "returned",
	}
}

// getValidStatusStrings returns only valid Status values, to support
// validation. Unknown is intentionally excluded.
func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Returned:  "returned",
	}
}

// transitionKey identifies one row of the transition table.
type transitionKey struct {
	from  Status
	actor Actor
}

// getTransitions returns the full role-gated transition table. Triples not
// present here are invalid; there is no implicit fallback.
func getTransitions() map[transitionKey][]Status {
	return map[transitionKey][]Status{
		{Pending, ActorSeller}:   {Confirmed, Cancelled},
		{Pending, ActorBuyer}:    {Cancelled},
		{Confirmed, ActorSeller}: {InTransit, Cancelled},
		{InTransit, ActorSeller}: {Delivered},
	}
}

// ParseStatus maps a wire-level status name to a Status. Unrecognized names
// are an error here; presentation-level fallbacks belong to the caller.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle
// states. Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-level name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}

// NextFor returns the transition menu: the statuses the given actor may
// move this status to. The slice is empty for terminal statuses and for
// actors with no allowed moves.
func (s Status) NextFor(actor Actor) []Status {
	next := getTransitions()[transitionKey{s, actor}]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the actor may move this status to next.
func (s Status) CanTransitionTo(actor Actor, next Status) bool {
	for _, allowed := range getTransitions()[transitionKey{s, actor}] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition.
//
// Returns:
//   - (next, nil) when the (current, actor, next) triple is in the table
//   - (0, ErrInvalidTransition-wrapped error) otherwise
//
// The error names the rejected triple so callers can surface it verbatim.
func (s Status) TransitionTo(actor Actor, next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(actor, next) {
		return 0, fmt.Errorf("%w: %s cannot move order from %s to %s",
			ErrInvalidTransition, actor, s, next)
	}
	return next, nil
}
