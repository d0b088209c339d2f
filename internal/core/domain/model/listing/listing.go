package listing

import (
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

var (
	// ErrListingIsNotConstructed is returned when a Listing instance was
	// not created through NewListing or RestoreListing.
	ErrListingIsNotConstructed = errors.New("Listing must be created via NewListing or RestoreListing")
)

// Kind distinguishes the two catalogues of the marketplace.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindCrop is a farmer's crop listing.
	KindCrop

	// KindProduct is a seller's product listing.
	KindProduct
)

// ParseKind maps a wire-level name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "crop":
		return KindCrop, nil
	case "product":
		return KindProduct, nil
	default:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid listing kind", s))
	}
}

// Validate checks that the kind is one of the defined values.
func (k Kind) Validate() error {
	if k != KindCrop && k != KindProduct {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid listing kind", int(k)))
	}
	return nil
}

// String returns "crop" or "product", or "unknown" for invalid values.
func (k Kind) String() string {
	switch k {
	case KindCrop:
		return "crop"
	case KindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// Listing is the aggregate root for one sellable line item. It tracks the
// remaining available quantity, which order creation reserves against.
//
// The availability check is advisory: two concurrent orders can both pass
// it against a stale read. Reservation inside the order-creation unit of
// work narrows that window but does not close it.
type Listing struct {
	id        kernel.UUID
	sellerID  kernel.UUID
	kind      Kind
	name      string
	available int
	unitPrice kernel.Money

	isConstructed bool
}

// NewListing creates a validated listing with an initial available
// quantity.
func NewListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	kind Kind,
	name string,
	available int,
	unitPrice kernel.Money,
) (*Listing, error) {
	l := &Listing{isConstructed: true}

	if err := errors.Join(
		l.setID(id),
		l.setSellerID(sellerID),
		l.setKind(kind),
		l.setName(name),
		l.setAvailable(available),
		l.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreListing reconstructs a listing from persistence.
func RestoreListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	kind Kind,
	name string,
	available int,
	unitPrice kernel.Money,
) (*Listing, error) {
	return NewListing(id, sellerID, kind, name, available, unitPrice)
}

// Validate ensures the listing was properly constructed.
func (l *Listing) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrListingIsNotConstructed
	}
	return nil
}

// ID returns the listing's unique identifier.
func (l *Listing) ID() kernel.UUID {
	return l.id
}

// SellerID returns the owning seller's identifier.
func (l *Listing) SellerID() kernel.UUID {
	return l.sellerID
}

// Kind returns whether this is a crop or a product line.
func (l *Listing) Kind() Kind {
	return l.kind
}

// Name returns the display name.
func (l *Listing) Name() string {
	return l.name
}

// Available returns the remaining quantity.
func (l *Listing) Available() int {
	return l.available
}

// UnitPrice returns the per-unit price.
func (l *Listing) UnitPrice() kernel.Money {
	return l.unitPrice
}

// CanFulfill reports whether the listing has at least the given quantity
// available.
func (l *Listing) CanFulfill(quantity int) bool {
	return quantity > 0 && quantity <= l.available
}

// Reserve decrements availability for a new order. Quantities that are
// non-positive or exceed the remaining availability are rejected with a
// range error.
func (l *Listing) Reserve(quantity int) error {
	if quantity <= 0 || quantity > l.available {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, l.available)
	}
	l.available -= quantity
	return nil
}

// Restock increases availability, e.g. after a harvest or a cancelled
// order's compensation.
func (l *Listing) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.available += quantity
	return nil
}

func (l *Listing) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Listing) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.sellerID = id
	return nil
}

func (l *Listing) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	l.kind = kind
	return nil
}

func (l *Listing) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *Listing) setAvailable(available int) error {
	if available < 0 {
		return errs.NewValueIsInvalidErrorWithCause("available",
			fmt.Errorf("%d is negative", available))
	}
	l.available = available
	return nil
}

func (l *Listing) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	l.unitPrice = unitPrice
	return nil
}
