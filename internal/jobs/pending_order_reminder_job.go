package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"agromarket/internal/core/application/usecases/commands"
)

// reminderAge is how long an order may sit in Pending before its seller is
// reminded.
const reminderAge = 24 * time.Hour

// PendingOrderReminderJob periodically re-notifies sellers about orders
// they have left unconfirmed. Runs hourly; each sweep is read-only and
// publishes reminders through the notification queue.
type PendingOrderReminderJob struct {
	handler commands.RemindPendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingOrderReminderJob creates the reminder job.
func NewPendingOrderReminderJob(
	handler commands.RemindPendingOrdersCommandHandler,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the hourly reminder sweep.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindPendingOrdersCommand(reminderAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build reminder command", "error", err)
			return
		}

		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder sweep failed", "error", err)
			return
		}
		if published > 0 {
			j.logger.InfoContext(ctx, "Pending order reminders published", "count", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}
