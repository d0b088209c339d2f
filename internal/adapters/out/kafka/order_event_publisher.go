// Package kafka publishes order lifecycle events to the order-changed
// topic. Produce is asynchronous and best-effort: a failed publish is
// logged in the delivery callback and never fed back into the transition
// that triggered it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// OrderEventPublisher writes order events to Kafka. It implements
// ports.OrderEventPublisher.
type OrderEventPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewOrderEventPublisher creates a publisher connected to the given
// brokers.
//
// Returns error if brokers or topic are empty, logger is nil, or the
// client cannot be created.
func NewOrderEventPublisher(brokers []string, topic string, logger *slog.Logger) (*OrderEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &OrderEventPublisher{
		client: client,
		topic:  topic,
		logger: logger.With("component", "order_event_publisher"),
	}, nil
}

// PublishOrderEvent produces one event keyed by order id. The call returns
// once the record is handed to the producer; delivery outcome is reported
// in the callback.
func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event ports.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
		Timestamp: time.Now(),
	}

	p.client.Produce(ctx, record, func(record *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("failed to publish order event",
				"event_type", event.EventType,
				"order_id", event.OrderID,
				"error", err)
			return
		}
		p.logger.Debug("order event published",
			"event_type", event.EventType,
			"order_id", event.OrderID,
			"partition", record.Partition,
			"offset", record.Offset)
	})

	return nil
}

// Close flushes pending records and closes the client.
func (p *OrderEventPublisher) Close() {
	if err := p.client.Flush(context.Background()); err != nil {
		p.logger.Warn("failed to flush kafka producer", "error", err)
	}
	p.client.Close()
}
