package ports

import (
	"context"
)

// MailMessage is one fully rendered message handed to the transport.
type MailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// SendResult reports the outcome of one delivery attempt chain. Success
// false with a non-empty Error means the transport's retry budget was
// exhausted; the message is lost and nobody retries it.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// MailSender abstracts the outbound mail transport. Implementations own
// their timeout and retry policy; callers treat any returned error as a
// delivery failure, never as a reason to abort business flow.
type MailSender interface {
	// Send delivers one message, retrying transient failures within the
	// implementation's own budget.
	Send(ctx context.Context, msg MailMessage) (SendResult, error)

	// Ready reports whether the transport verified its connection. A
	// not-ready transport still accepts Send calls and dials on demand.
	Ready() bool
}
