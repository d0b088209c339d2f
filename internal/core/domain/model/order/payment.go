package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// PaymentMethod identifies how the buyer pays for the order. It is set at
// creation and never changes.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// CashOnDelivery settles the order when it is handed over.
	CashOnDelivery

	// OnlinePayment settles the order through the payment gateway.
	OnlinePayment

	// BankTransfer settles the order through a direct transfer.
	BankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		CashOnDelivery:       "cod",
		OnlinePayment:        "online",
		BankTransfer:         "bank_transfer",
	}
}

// ParsePaymentMethod maps a wire-level name to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "cod":
		return CashOnDelivery, nil
	case "online":
		return OnlinePayment, nil
	case "bank_transfer":
		return BankTransfer, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%q is not a valid payment method", s))
	}
}

// Validate checks that the method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if m != CashOnDelivery && m != OnlinePayment && m != BankTransfer {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	return nil
}

// String returns the wire-level name, or "unknown" for invalid values.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks settlement separately from the order lifecycle.
// Payment collaborators mutate it independently of status transitions.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means no settlement has been recorded yet.
	PaymentPending

	// PaymentPaid means the amount was received.
	PaymentPaid

	// PaymentFailed means a settlement attempt was rejected.
	PaymentFailed

	// PaymentRefunded means a received amount was returned to the buyer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentFailed:        "failed",
		PaymentRefunded:      "refunded",
	}
}

// ParsePaymentStatus maps a wire-level name to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch s {
	case "pending":
		return PaymentPending, nil
	case "paid":
		return PaymentPaid, nil
	case "failed":
		return PaymentFailed, nil
	case "refunded":
		return PaymentRefunded, nil
	default:
		return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", s))
	}
}

// Validate checks that the status is one of the defined values.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok || p == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	return nil
}

// String returns the wire-level name, or "unknown" for invalid values.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
