package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// CreateOrderCommand represents a buyer's request to purchase a quantity
// of a seller's listing. The unit price and item details are resolved from
// the listing at handle time, not supplied by the caller.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, buyer, seller, listingID, 25, address, order.CashOnDelivery)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed for %s", result.OrderID, result.ItemName)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	buyer           order.Party
	seller          order.Party
	listingID       kernel.UUID
	quantity        int
	shippingAddress kernel.Address
	paymentMethod   order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that identifiers are valid, the buyer is constructed, and the
// quantity is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyer order.Party,
	seller order.Party,
	listingID kernel.UUID,
	quantity int,
	shippingAddress kernel.Address,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setBuyer(buyer),
		orderCommand.setSeller(seller),
		orderCommand.setListingID(listingID),
		orderCommand.setQuantity(quantity),
		orderCommand.setShippingAddress(shippingAddress),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Buyer returns the buyer placing the order.
func (c CreateOrderCommand) Buyer() order.Party {
	return c.buyer
}

// Seller returns the seller who owns the listing.
func (c CreateOrderCommand) Seller() order.Party {
	return c.seller
}

// ListingID returns the identifier of the listing being purchased.
func (c CreateOrderCommand) ListingID() kernel.UUID {
	return c.listingID
}

// Quantity returns the number of units requested.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// ShippingAddress returns the delivery destination.
func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

// PaymentMethod returns how the buyer intends to pay.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyer(buyer order.Party) error {
	if err := buyer.Validate(); err != nil {
		return err
	}

	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setSeller(seller order.Party) error {
	if err := seller.Validate(); err != nil {
		return err
	}

	c.seller = seller
	return nil
}

func (c *CreateOrderCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}

	c.listingID = listingID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
