package kernel

import (
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created
// through NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress constructor")

// GeoPoint holds optional latitude/longitude coordinates attached to a
// shipping address.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Address is an immutable value object describing where an order ships to.
// Street, city, state and postal code are required; coordinates are
// optional and carried only when the client supplied them.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	geo        *GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated shipping address. The geo point may be nil.
func NewAddress(street, city, state, postalCode string, geo *GeoPoint) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if state == "" {
		return Address{}, errs.NewValueIsRequiredError("state")
	}
	if postalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("postalCode")
	}

	var geoCopy *GeoPoint
	if geo != nil {
		g := *geo
		geoCopy = &g
	}

	return Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		geo:        geoCopy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// State returns the state or region.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Geo returns a copy of the optional coordinates, or nil when the address
// has none.
func (a Address) Geo() *GeoPoint {
	if a.geo == nil {
		return nil
	}
	g := *a.geo
	return &g
}

// IsEqual compares two addresses field by field, ignoring coordinates.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.postalCode == other.postalCode
}
