package order

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one transaction between a buyer and a seller for one
// crop or product line item. It is the aggregate root that owns the status
// field and the rules for which actor may move it to which next status.
//
// Order follows these invariants:
//   - Must reference a valid buyer, seller and listing item
//   - Quantity must be positive
//   - totalAmount equals quantity x unitPrice at creation and is never
//     recomputed afterwards
//   - Status transitions follow the role-gated table in Status
//   - Orders are never deleted; cancellation and return are retained
//     terminal states
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id     kernel.UUID
	buyer  Party
	seller Party
	item   ItemRef

	quantity    int
	unitPrice   kernel.Money
	totalAmount kernel.Money

	status        Status
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	shippingAddress kernel.Address

	orderDate        time.Time
	expectedDelivery *time.Time
	actualDelivery   *time.Time

	trackingID         string
	notes              string
	cancellationReason string

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with payment pending.
// The total amount is computed as quantity x unitPrice and fixed for the
// lifetime of the order.
//
// The quantity-versus-stock guard is the caller's responsibility: the
// aggregate only enforces that quantity is positive.
func NewOrder(
	id kernel.UUID,
	buyer Party,
	seller Party,
	item ItemRef,
	quantity int,
	unitPrice kernel.Money,
	shippingAddress kernel.Address,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		orderDate:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyer),
		o.setSeller(seller),
		o.setItem(item),
		o.setQuantity(quantity),
		o.setUnitPrice(unitPrice),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.totalAmount = unitPrice.Multiply(int64(quantity))
	return o, nil
}

// RestoreOrderParams carries the stored state of an order when it is
// reconstructed from persistence.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	Buyer              Party
	Seller             Party
	Item               ItemRef
	Quantity           int
	UnitPrice          kernel.Money
	TotalAmount        kernel.Money
	Status             Status
	PaymentMethod      PaymentMethod
	PaymentStatus      PaymentStatus
	ShippingAddress    kernel.Address
	OrderDate          time.Time
	ExpectedDelivery   *time.Time
	ActualDelivery     *time.Time
	TrackingID         string
	Notes              string
	CancellationReason string
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts the stored status, payment state and total amount verbatim, but
// still validates value objects and enum ranges so corrupt rows surface as
// errors instead of invalid aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		totalAmount:        params.TotalAmount,
		orderDate:          params.OrderDate,
		expectedDelivery:   params.ExpectedDelivery,
		actualDelivery:     params.ActualDelivery,
		trackingID:         params.TrackingID,
		notes:              params.Notes,
		cancellationReason: params.CancellationReason,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setBuyer(params.Buyer),
		o.setSeller(params.Seller),
		o.setItem(params.Item),
		o.setQuantity(params.Quantity),
		o.setUnitPrice(params.UnitPrice),
		o.setShippingAddress(params.ShippingAddress),
		o.setPaymentMethod(params.PaymentMethod),
		params.TotalAmount.Validate(),
		params.Status.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = params.Status
	o.paymentStatus = params.PaymentStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Buyer returns the buying party captured at creation.
func (o *Order) Buyer() Party {
	return o.buyer
}

// Seller returns the selling party captured at creation.
func (o *Order) Seller() Party {
	return o.seller
}

// Item returns the listing reference the order was placed against.
func (o *Order) Item() ItemRef {
	return o.item
}

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int {
	return o.quantity
}

// UnitPrice returns the per-unit price captured at creation.
func (o *Order) UnitPrice() kernel.Money {
	return o.unitPrice
}

// TotalAmount returns quantity x unitPrice as computed at creation.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentMethod returns how the buyer pays.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ShippingAddress returns the destination address.
func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

// OrderDate returns when the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// ExpectedDelivery returns the seller's committed delivery date, or nil.
func (o *Order) ExpectedDelivery() *time.Time {
	return o.expectedDelivery
}

// ActualDelivery returns when the order was delivered, or nil.
func (o *Order) ActualDelivery() *time.Time {
	return o.actualDelivery
}

// TrackingID returns the free-text shipment tracking reference.
func (o *Order) TrackingID() string {
	return o.trackingID
}

// Notes returns the buyer-visible free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// CancellationReason returns why the order was cancelled, if it was.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// NextStatuses returns the transition menu for the given actor from the
// order's current status.
func (o *Order) NextStatuses(actor Actor) []Status {
	return o.status.NextFor(actor)
}

// TransitionOptions carries the optional fields a caller may attach to a
// status change. Nil pointers mean "not provided"; provided values replace
// the stored ones.
type TransitionOptions struct {
	// ExpectedDelivery may accompany a transition to Confirmed. Dates
	// earlier than the current date are rejected.
	ExpectedDelivery *time.Time

	// TrackingID may accompany a transition to InTransit or Delivered.
	TrackingID *string

	// Notes may accompany any transition.
	Notes *string

	// CancellationReason may accompany a transition to Cancelled.
	CancellationReason *string
}

// isNoOpFor reports whether applying these options to the order would
// change nothing.
func (t TransitionOptions) isNoOpFor(o *Order) bool {
	if t.ExpectedDelivery != nil {
		if o.expectedDelivery == nil || !o.expectedDelivery.Equal(*t.ExpectedDelivery) {
			return false
		}
	}
	if t.TrackingID != nil && *t.TrackingID != o.trackingID {
		return false
	}
	if t.Notes != nil && *t.Notes != o.notes {
		return false
	}
	if t.CancellationReason != nil && *t.CancellationReason != o.cancellationReason {
		return false
	}
	return true
}

// ChangeStatus applies a role-gated status transition with its optional
// side effects.
//
// Behavior:
//   - Requesting the current status with no differing optional fields is a
//     benign no-op: the order is unchanged and (false, nil) is returned.
//     Repeating a Delivered request never overwrites actualDelivery.
//   - Requesting the current status with differing optional fields updates
//     those fields without consulting the transition table.
//   - Any other request is validated against the transition table for the
//     actor; a miss returns an ErrInvalidTransition-wrapped error and the
//     order is left untouched.
//
// Side effects on a successful transition:
//   - to Confirmed: an optional expectedDelivery date is stored; dates
//     before the current date are rejected
//   - to InTransit or Delivered: an optional trackingID is stored
//   - to Delivered: actualDelivery is set to now when unset
//   - to Cancelled: an optional cancellationReason is stored
//   - any: optional notes are stored
//
// The returned bool reports whether anything changed and therefore whether
// the caller needs to persist and notify.
func (o *Order) ChangeStatus(actor Actor, next Status, opts TransitionOptions, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := actor.Validate(); err != nil {
		return false, err
	}

	if next == o.status {
		if opts.isNoOpFor(o) {
			return false, nil
		}
		if err := o.applyTransitionOptions(next, opts, now); err != nil {
			return false, err
		}
		return true, nil
	}

	newStatus, err := o.status.TransitionTo(actor, next)
	if err != nil {
		return false, err
	}

	if err = o.applyTransitionOptions(newStatus, opts, now); err != nil {
		return false, err
	}

	o.status = newStatus
	if newStatus == Delivered && o.actualDelivery == nil {
		o.actualDelivery = &now
	}

	return true, nil
}

// MarkPayment records a settlement state change. Payment state moves
// independently of the order lifecycle.
func (o *Order) MarkPayment(status PaymentStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

// applyTransitionOptions stores the optional fields relevant to the target
// status. Fields that do not apply to the target are ignored rather than
// rejected, mirroring the tolerant handling of the original flow.
func (o *Order) applyTransitionOptions(target Status, opts TransitionOptions, now time.Time) error {
	if opts.ExpectedDelivery != nil && target == Confirmed {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if opts.ExpectedDelivery.Before(today) {
			return errs.NewValueIsInvalidErrorWithCause("expectedDelivery",
				fmt.Errorf("%s is earlier than the current date", opts.ExpectedDelivery.Format(time.DateOnly)))
		}
		d := *opts.ExpectedDelivery
		o.expectedDelivery = &d
	}

	if opts.TrackingID != nil && (target == InTransit || target == Delivered) {
		o.trackingID = *opts.TrackingID
	}

	if opts.CancellationReason != nil && target == Cancelled {
		o.cancellationReason = *opts.CancellationReason
	}

	if opts.Notes != nil {
		o.notes = *opts.Notes
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyer Party) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	o.buyer = buyer
	return nil
}

func (o *Order) setSeller(seller Party) error {
	if err := seller.Validate(); err != nil {
		return err
	}
	o.seller = seller
	return nil
}

func (o *Order) setItem(item ItemRef) error {
	if err := item.Validate(); err != nil {
		return err
	}
	o.item = item
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	o.unitPrice = unitPrice
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
