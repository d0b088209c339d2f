package notifications

import (
	"context"
	"log/slog"

	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// Dispatcher renders notification requests and hands them to the mail
// transport. Every failure, from a malformed request to an exhausted
// transport retry budget, is logged and reported through the result's
// Success flag; Dispatch never returns an error to the caller.
type Dispatcher struct {
	composer *Composer
	sender   ports.MailSender
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher.
//
// Returns error if any of provided arguments is nil.
func NewDispatcher(composer *Composer, sender ports.MailSender, logger *slog.Logger) (*Dispatcher, error) {
	if composer == nil {
		return nil, errs.NewValueIsRequiredError("composer")
	}
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		composer: composer,
		sender:   sender,
		logger:   logger.With("component", "notification_dispatcher"),
	}, nil
}

// Dispatch composes and sends one notification. The returned result is
// informational only: a Success false outcome means the message is lost,
// nobody retries it, and the business flow that published it is unaffected.
func (d *Dispatcher) Dispatch(ctx context.Context, req notification.Request) ports.SendResult {
	msg, err := d.composer.Compose(req)
	if err != nil {
		d.logger.Error("failed to compose notification",
			"kind", req.Kind.String(),
			"recipient", req.Recipient.Email,
			"error", err)
		return ports.SendResult{Success: false, Error: err.Error()}
	}

	result, err := d.sender.Send(ctx, msg)
	if err != nil {
		d.logger.Error("failed to send notification",
			"kind", req.Kind.String(),
			"recipient", req.Recipient.Email,
			"subject", msg.Subject,
			"error", err)
		return ports.SendResult{Success: false, Error: err.Error()}
	}

	d.logger.Info("notification sent",
		"kind", req.Kind.String(),
		"recipient", req.Recipient.Email,
		"message_id", result.MessageID)
	return result
}
