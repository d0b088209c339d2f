package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// status on behalf of a buyer or seller. Transition side data such as
// tracking IDs and cancellation reasons travels in the options.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.ActorSeller, order.Confirmed, opts)
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     order.Actor
	requested order.Status
	options   order.TransitionOptions

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to change an order's status.
// Validates that the order ID, actor and requested status are well formed.
// Whether the transition itself is allowed is decided by the aggregate.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actor order.Actor,
	requested order.Status,
	options order.TransitionOptions,
) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		options: options,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setActor(actor),
		statusCommand.setRequested(requested),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the role performing the status change.
func (c UpdateOrderStatusCommand) Actor() order.Actor {
	return c.actor
}

// Requested returns the target status.
func (c UpdateOrderStatusCommand) Requested() order.Status {
	return c.requested
}

// Options returns the transition side data.
func (c UpdateOrderStatusCommand) Options() order.TransitionOptions {
	return c.options
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderStatusCommand) setRequested(requested order.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	c.requested = requested
	return nil
}
