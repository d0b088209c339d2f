package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

const dispatchTimeout = 2 * time.Minute

// RequestDispatcher turns one notification request into a delivery
// attempt. The local Dispatcher and the remote mailer-service client both
// satisfy it.
type RequestDispatcher interface {
	Dispatch(ctx context.Context, req notification.Request) ports.SendResult
}

// Queue is an in-process message queue between the order flows and the
// dispatcher. Publish hands a request to a worker goroutine and returns
// immediately; when the buffer is full the request is dropped with a log
// line. The queue implements ports.NotificationPublisher.
type Queue struct {
	dispatcher RequestDispatcher
	logger     *slog.Logger
	requests   chan notification.Request

	stop     chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// NewQueue creates a queue with the given buffer size.
//
// Returns error if dispatcher or logger is nil, or size is not positive.
func NewQueue(dispatcher RequestDispatcher, size int, logger *slog.Logger) (*Queue, error) {
	if dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("dispatcher")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if size <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("size", size, 1, 100000)
	}

	return &Queue{
		dispatcher: dispatcher,
		logger:     logger.With("component", "notification_queue"),
		requests:   make(chan notification.Request, size),
		stop:       make(chan struct{}),
	}, nil
}

// Start launches the worker goroutine that drains the queue.
func (q *Queue) Start() {
	q.done.Add(1)
	go q.run()
}

// Stop shuts the worker down after it finishes the request in flight.
// Buffered requests that were not yet picked up are dropped.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
	q.done.Wait()
}

// Publish enqueues a request for asynchronous dispatch. It never blocks:
// when the buffer is full the request is dropped and logged, mirroring the
// lost-mail semantics of a failed send.
func (q *Queue) Publish(req notification.Request) {
	select {
	case q.requests <- req:
	default:
		q.logger.Warn("notification queue full, dropping request",
			"kind", req.Kind.String(),
			"recipient", req.Recipient.Email)
	}
}

func (q *Queue) run() {
	defer q.done.Done()

	for {
		select {
		case req := <-q.requests:
			q.dispatch(req)
		case <-q.stop:
			return
		}
	}
}

func (q *Queue) dispatch(req notification.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	result := q.dispatcher.Dispatch(ctx, req)
	if !result.Success {
		q.logger.Warn("notification delivery failed",
			"kind", req.Kind.String(),
			"recipient", req.Recipient.Email,
			"error", result.Error)
	}
}
