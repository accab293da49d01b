package api

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Notifier defaults.
const (
	DefaultQueueSize   = 64
	DefaultCallTimeout = 5 * time.Second
)

// NotifierOptions configures a Notifier. Zero values use the defaults.
type NotifierOptions struct {
	QueueSize int
	Timeout   time.Duration
}

type call struct {
	name string
	fn   func(ctx context.Context) error
}

// Notifier delivers Service calls in the background, one at a time and in
// submission order. Sends never block: when the queue is full the call is
// dropped and logged. Errors are logged, never returned.
type Notifier struct {
	svc     Service
	logger  *log.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan call
	done   chan struct{}

	closeOnce sync.Once
}

// NewNotifier starts the delivery worker for svc.
func NewNotifier(svc Service, opts NotifierOptions, logger *log.Logger) *Notifier {
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = log.Default()
	}

	n := &Notifier{
		svc:     svc,
		logger:  logger,
		timeout: opts.Timeout,
		queue:   make(chan call, opts.QueueSize),
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	defer close(n.done)
	for c := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		if err := c.fn(ctx); err != nil {
			n.logger.Warn("remote call failed", "call", c.name, "err", err)
		}
		cancel()
	}
}

func (n *Notifier) enqueue(name string, fn func(ctx context.Context) error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.logger.Debug("notifier closed, dropping call", "call", name)
		return
	}

	select {
	case n.queue <- call{name: name, fn: fn}:
	default:
		n.logger.Warn("notifier queue full, dropping call", "call", name)
	}
}

// UpsertUser queues Service.UpsertUser.
func (n *Notifier) UpsertUser(name string) {
	n.enqueue("upsertUser", func(ctx context.Context) error {
		return n.svc.UpsertUser(ctx, name)
	})
}

// StartSession queues Service.StartSession.
func (n *Notifier) StartSession(s SessionStart) {
	n.enqueue("startSession", func(ctx context.Context) error {
		return n.svc.StartSession(ctx, s)
	})
}

// FinishRound queues Service.FinishRound.
func (n *Notifier) FinishRound(r RoundFinish) {
	n.enqueue("finishRound", func(ctx context.Context) error {
		return n.svc.FinishRound(ctx, r)
	})
}

// FinishSession queues Service.FinishSession.
func (n *Notifier) FinishSession(s SessionFinish) {
	n.enqueue("finishSession", func(ctx context.Context) error {
		return n.svc.FinishSession(ctx, s)
	})
}

// Close stops accepting calls and waits until the queued ones are delivered.
// Safe to call multiple times.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.queue)
		n.mu.Unlock()
	})
	<-n.done
}
