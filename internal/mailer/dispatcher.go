package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"focototal-be/internal/logging"
)

var (
	ErrQueueFull        = errors.New("mail queue is full")
	ErrDispatcherClosed = errors.New("mail dispatcher is closed")
)

// Dispatcher is an asynchronous Sender: Send only enqueues and a fixed pool
// of workers delivers through the wrapped Sender, retrying with backoff.
// Failures end up in the log and nowhere else.
type Dispatcher struct {
	next    Sender
	logger  logging.Logger
	queue   chan Message
	workers int

	// backoff builds a fresh policy per message.
	backoff     func() retry.Backoff
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	group  *errgroup.Group
}

func NewDispatcher(next Sender, logger logging.Logger, queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		next:    next,
		logger:  logger,
		queue:   make(chan Message, queueSize),
		workers: workers,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
		},
		sendTimeout: 10 * time.Second,
	}
}

// Start launches the workers. They run until Shutdown closes the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for msg := range d.queue {
				d.deliver(gctx, msg)
			}
			return nil
		})
	}
	d.group = g
}

func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting messages and waits for the queue to drain or ctx
// to expire, whichever comes first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	if d.group == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- d.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	attempts := 0
	err := retry.Do(ctx, d.backoff(), func(ctx context.Context) error {
		attempts++
		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()

		if err := d.next.Send(sendCtx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		d.logger.Error(ctx, "mail delivery failed", "kind", msg.Kind, "to", msg.To, "attempts", attempts, "error", err)
		return
	}
	d.logger.Debug(ctx, "mail delivered", "kind", msg.Kind, "to", msg.To, "attempts", attempts)
}
