package order

import (
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// ErrPartyIsNotConstructed is returned when a Party was not created through
// NewParty.
var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError("Party must be created via NewParty constructor")

// ErrItemRefIsNotConstructed is returned when an ItemRef was not created
// through NewItemRef.
var ErrItemRefIsNotConstructed = errs.NewValueIsRequiredError("ItemRef must be created via NewItemRef constructor")

// Party denormalizes one side of the transaction: the identifier plus the
// display name and email captured at order creation. Notifications are
// addressed from these fields without further lookups.
type Party struct {
	id    kernel.UUID
	name  string
	email string

	guard guard.ConstructorGuard
}

// NewParty creates a validated buyer or seller reference.
func NewParty(id kernel.UUID, name, email string) (Party, error) {
	if err := id.Validate(); err != nil {
		return Party{}, err
	}
	if name == "" {
		return Party{}, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return Party{}, errs.NewValueIsRequiredError("email")
	}

	return Party{
		id:    id,
		name:  name,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the party was created through NewParty.
func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

// ID returns the party's identifier.
func (p Party) ID() kernel.UUID {
	return p.id
}

// Name returns the display name captured at creation.
func (p Party) Name() string {
	return p.name
}

// Email returns the email captured at creation.
func (p Party) Email() string {
	return p.email
}

// ItemKind distinguishes the two listing catalogues of the marketplace.
type ItemKind int

const (
	// ItemKindUnknown represents an invalid or undefined kind.
	ItemKindUnknown ItemKind = iota

	// ItemKindCrop is a farmer's crop listing.
	ItemKindCrop

	// ItemKindProduct is a seller's product listing.
	ItemKindProduct
)

// ParseItemKind maps a wire-level name to an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	switch s {
	case "crop":
		return ItemKindCrop, nil
	case "product":
		return ItemKindProduct, nil
	default:
		return ItemKindUnknown, errs.NewValueIsInvalidErrorWithCause("itemType",
			fmt.Errorf("%q is not a valid item type", s))
	}
}

// Validate checks that the kind is one of the defined values.
func (k ItemKind) Validate() error {
	if k != ItemKindCrop && k != ItemKindProduct {
		return errs.NewValueIsInvalidErrorWithCause("itemType",
			fmt.Errorf("%d is not a valid item type", int(k)))
	}
	return nil
}

// String returns "crop" or "product", or "unknown" for invalid values.
func (k ItemKind) String() string {
	switch k {
	case ItemKindCrop:
		return "crop"
	case ItemKindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// ItemRef identifies the listing the order was placed against, with the
// display name captured at creation time.
type ItemRef struct {
	id   kernel.UUID
	kind ItemKind
	name string

	guard guard.ConstructorGuard
}

// NewItemRef creates a validated listing reference.
func NewItemRef(id kernel.UUID, kind ItemKind, name string) (ItemRef, error) {
	if err := id.Validate(); err != nil {
		return ItemRef{}, err
	}
	if err := kind.Validate(); err != nil {
		return ItemRef{}, err
	}
	if name == "" {
		return ItemRef{}, errs.NewValueIsRequiredError("itemName")
	}

	return ItemRef{
		id:    id,
		kind:  kind,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the reference was created through NewItemRef.
func (r ItemRef) Validate() error {
	return r.guard.Validate(ErrItemRefIsNotConstructed)
}

// ID returns the listing identifier.
func (r ItemRef) ID() kernel.UUID {
	return r.id
}

// Kind returns the listing kind.
func (r ItemRef) Kind() ItemKind {
	return r.kind
}

// Name returns the display name captured at creation.
func (r ItemRef) Name() string {
	return r.name
}
