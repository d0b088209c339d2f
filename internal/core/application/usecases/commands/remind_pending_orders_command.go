package commands

import (
	"time"

	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// ErrRemindPendingOrdersCommandIsNotConstructed is returned when the command
// was not created through the constructor.
var ErrRemindPendingOrdersCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"RemindPendingOrdersCommand must be created via NewRemindPendingOrdersCommand constructor")

// RemindPendingOrdersCommand asks for a reminder sweep over orders that
// have been sitting in Pending longer than the given age.
type RemindPendingOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRemindPendingOrdersCommand creates a command covering orders older
// than the given duration.
func NewRemindPendingOrdersCommand(olderThan time.Duration) (RemindPendingOrdersCommand, error) {
	if olderThan <= 0 {
		return RemindPendingOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return RemindPendingOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingOrdersCommandIsNotConstructed)
}

// OlderThan returns the minimum age of orders covered by the sweep.
func (c RemindPendingOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
