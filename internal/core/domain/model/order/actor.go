package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Actor identifies the party attempting a status transition. Transition
// rules are keyed by (current status, actor), so the same target status can
// be reachable for one role and forbidden for another.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorBuyer is the customer who placed the order.
	ActorBuyer

	// ActorSeller is the party fulfilling the order. Farmers act as
	// sellers of their crop listings.
	ActorSeller
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown: "unknown",
		ActorBuyer:   "buyer",
		ActorSeller:  "seller",
	}
}

// ParseActor maps a wire-level role name to an Actor. The "farmer" role is
// a seller for transition purposes.
func ParseActor(s string) (Actor, error) {
	switch s {
	case "buyer":
		return ActorBuyer, nil
	case "seller", "farmer":
		return ActorSeller, nil
	default:
		return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%q is not a valid actor role", s))
	}
}

// Validate checks that the actor is one of the defined roles.
func (a Actor) Validate() error {
	if a != ActorBuyer && a != ActorSeller {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%d is not a valid actor", int(a)))
	}
	return nil
}

// String returns the role name, or "unknown" for invalid values.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
