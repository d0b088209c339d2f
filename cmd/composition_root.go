package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"agromarket/internal/adapters/out/kafka"
	"agromarket/internal/adapters/out/mailerapi"
	"agromarket/internal/adapters/out/postgres"
	"agromarket/internal/adapters/out/smtp"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/ports"
	"agromarket/internal/notifications"
)

const notificationQueueSize = 64

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	notificationQueue *notifications.Queue
	eventPublisher    ports.OrderEventPublisher
	logger            *slog.Logger
}

// NewCompositionRoot wires the outbound adapters. The notification path is
// chosen by configuration: the companion mailer service when MAILER_URL is
// set, direct SMTP otherwise. Kafka publishing is optional; without a
// broker address events are logged and dropped.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	dispatcher, err := buildDispatcher(cfg, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	queue, err := notifications.NewQueue(dispatcher, notificationQueueSize, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	var events ports.OrderEventPublisher
	if cfg.KafkaHost != "" {
		publisher, err := kafka.NewOrderEventPublisher(
			[]string{cfg.KafkaHost}, cfg.KafkaOrderChangedTopic, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
		events = publisher
	} else {
		events = nopOrderEventPublisher{logger: logger}
	}

	return CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		notificationQueue: queue,
		eventPublisher:    events,
		logger:            logger,
	}, nil
}

func buildDispatcher(cfg Config, logger *slog.Logger) (notifications.RequestDispatcher, error) {
	if cfg.MailerURL != "" {
		return mailerapi.NewClient(cfg.MailerURL, cfg.MailerAPIKey, logger)
	}

	sender, err := BuildMailSender(cfg, logger)
	if err != nil {
		return nil, err
	}

	composer, err := notifications.NewComposer(cfg.SiteBaseURL)
	if err != nil {
		return nil, err
	}

	return notifications.NewDispatcher(composer, sender, logger)
}

// BuildMailSender constructs the SMTP sender from configuration. Shared
// with the mailer process entrypoint.
func BuildMailSender(cfg Config, logger *slog.Logger) (*smtp.Sender, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", cfg.SMTPPort, err)
	}

	return smtp.NewSender(smtp.Config{
		Host:     cfg.SMTPHost,
		Port:     port,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	}, logger)
}

// NotificationQueue returns the shared in-process notification queue.
func (c *CompositionRoot) NotificationQueue() *notifications.Queue {
	return c.notificationQueue
}

// OrderEventPublisher returns the configured order event publisher.
func (c *CompositionRoot) OrderEventPublisher() ports.OrderEventPublisher {
	return c.eventPublisher
}

func (c *CompositionRoot) CreateCreateListingCommandHandler() commands.CreateListingCommandHandler {
	var f commands.ListingUoWFactory = FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateListingCommandHandler(f)
}

func (c *CompositionRoot) CreateRestockListingCommandHandler() commands.RestockListingCommandHandler {
	var f commands.ListingUoWFactory = FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockListingCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRemindPendingOrdersCommandHandler() commands.RemindPendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemindPendingOrdersCommandHandler(f, c.notificationQueue)
}

func (c *CompositionRoot) CreateGetBuyerOrdersQueryHandler() queries.GetBuyerOrdersQueryHandler {
	return queries.NewGetBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerDashboardQueryHandler() queries.GetSellerDashboardQueryHandler {
	return queries.NewGetSellerDashboardQueryHandler(c.gormDB)
}

type FuncListingUoWFactory func() commands.ListingUoW

func (f FuncListingUoWFactory) Create() commands.ListingUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// nopOrderEventPublisher drops events when no broker is configured.
type nopOrderEventPublisher struct {
	logger *slog.Logger
}

func (p nopOrderEventPublisher) PublishOrderEvent(_ context.Context, event ports.OrderEvent) error {
	p.logger.Debug("kafka not configured, dropping order event",
		"event_type", event.EventType,
		"order_id", event.OrderID)
	return nil
}
