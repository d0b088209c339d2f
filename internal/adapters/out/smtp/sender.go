// Package smtp delivers rendered mail through an SMTP relay. The sender
// owns its own timeout and retry policy so callers can stay fire-and-forget.
package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/wneessen/go-mail"

	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

const (
	connectionTimeout = 30 * time.Second
	greetingTimeout   = 15 * time.Second

	retryDelay  = 2 * time.Second
	maxAttempts = 3
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Sender sends mail over SMTP, retrying transient failures with a fixed
// delay before giving up. It implements ports.MailSender.
type Sender struct {
	client   *mail.Client
	from     string
	fromName string
	logger   *slog.Logger
	ready    atomic.Bool
}

// NewSender creates a sender for the given relay.
//
// Returns error if the configuration is incomplete or logger is nil.
func NewSender(cfg Config, logger *slog.Logger) (*Sender, error) {
	if cfg.Host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if cfg.Port <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("port", cfg.Port, 1, 65535)
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("from")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(connectionTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Sender{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger.With("component", "smtp_sender"),
	}, nil
}

// Verify dials the relay once to confirm it is reachable. A failed
// verification leaves the sender not ready but still usable: Send dials on
// demand, so a relay that comes up later starts working without a restart.
func (s *Sender) Verify(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, greetingTimeout)
	defer cancel()

	if err := s.client.DialWithContext(dialCtx); err != nil {
		s.logger.Warn("smtp verification failed, transport not ready", "error", err)
		return fmt.Errorf("verify smtp relay: %w", err)
	}
	if err := s.client.Close(); err != nil {
		s.logger.Warn("failed to close smtp verification connection", "error", err)
	}

	s.ready.Store(true)
	s.logger.Info("smtp relay verified")
	return nil
}

// Ready reports whether the relay was reachable at the last verification
// or successful send.
func (s *Sender) Ready() bool {
	return s.ready.Load()
}

// Send delivers one message, retrying transient failures up to three
// attempts with a fixed delay. The returned error means the retry budget
// is exhausted and the message is lost.
func (s *Sender) Send(ctx context.Context, msg ports.MailMessage) (ports.SendResult, error) {
	m, err := s.buildMessage(msg)
	if err != nil {
		return ports.SendResult{Success: false, Error: err.Error()}, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryDelay), maxAttempts-1), ctx)

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if sendErr := s.client.DialAndSendWithContext(ctx, m); sendErr != nil {
			s.logger.Warn("smtp send attempt failed",
				"attempt", attempt,
				"to", msg.To,
				"error", sendErr)
			return sendErr
		}
		return nil
	}, policy)
	if err != nil {
		return ports.SendResult{Success: false, Error: err.Error()},
			fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	s.ready.Store(true)
	return ports.SendResult{Success: true, MessageID: m.GetMessageID()}, nil
}

func (s *Sender) buildMessage(msg ports.MailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.from); err != nil {
		return nil, fmt.Errorf("set mail sender: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return nil, fmt.Errorf("set mail recipient: %w", err)
	}

	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
