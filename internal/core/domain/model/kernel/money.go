package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney. The zero value carries no currency and is invalid.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney constructor")

const currencyCodeLength = 3

// Money represents a monetary amount in minor currency units (e.g. paise,
// cents) together with its ISO 4217 currency code. Money is an immutable
// value object; arithmetic operations return new instances.
//
// Example:
//
//	price, err := kernel.NewMoney(28, "INR")
//	if err != nil {
//	    // handle validation error
//	}
//	total := price.Multiply(500) // 14000 INR
type Money struct {
	amount   int64
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must not be negative and the
// currency must be a 3-letter ISO 4217 code.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	if len(currency) != currencyCodeLength {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter ISO code", currency))
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Money value was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Multiply returns a new Money scaled by the given factor.
func (m Money) Multiply(factor int64) Money {
	return Money{
		amount:   m.amount * factor,
		currency: m.currency,
		guard:    m.guard,
	}
}

// Add returns the sum of two Money values. Adding different currencies is
// an error.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
		guard:    m.guard,
	}, nil
}

// IsEqual reports whether both amount and currency match.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String implements fmt.Stringer, e.g. "14000 INR".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
