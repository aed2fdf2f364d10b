// Package notification delivers "quote viewed" alerts to detailers over push
// and email without holding up the request that triggered them.
package notification

import (
	"context"
	"sync"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

const (
	ChannelPush  = "push"
	ChannelEmail = "email"

	defaultWorkers     = 2
	defaultQueueSize   = 256
	defaultSendTimeout = 10 * time.Second
)

// Sender delivers one quote-viewed alert over a single channel.
type Sender interface {
	SendQuoteViewed(ctx context.Context, quote entities.Quote, detailer entities.Detailer, viewedAt time.Time) error
}

type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

type job struct {
	channel  string
	sender   Sender
	ctx      context.Context
	quote    entities.Quote
	detailer entities.Detailer
	viewedAt time.Time
}

// Dispatcher fans a notification out to every configured channel through a
// bounded queue drained by a fixed worker pool. Enqueueing never blocks: when
// the queue is full the job is dropped and logged.
type Dispatcher struct {
	push  Sender
	email Sender

	workers     int
	sendTimeout time.Duration
	queue       chan job

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

var _ interfaces.IQuoteViewNotifier = (*Dispatcher)(nil)

// NewDispatcher builds a dispatcher. A nil sender disables that channel.
func NewDispatcher(cfg Config, push, email Sender) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &Dispatcher{
		push:        push,
		email:       email,
		workers:     cfg.Workers,
		sendTimeout: cfg.SendTimeout,
		queue:       make(chan job, cfg.QueueSize),
	}
}

// Start launches the worker pool. Calling it more than once is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}
	log.Info().Int("workers", d.workers).Int("queue_size", cap(d.queue)).Msg("[notification][dispatcher] started")
}

// Close stops accepting jobs, drains whatever is queued and waits for the
// workers to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		// Nobody will drain; drop what is left.
		for j := range d.queue {
			log.Warn().Str("channel", j.channel).Str("quote_id", j.quote.ID).Msg("[notification][dispatcher] dropped on close")
		}
		return
	}
	d.wg.Wait()
	log.Info().Msg("[notification][dispatcher] stopped")
}

func (d *Dispatcher) NotifyQuoteViewed(ctx context.Context, quote entities.Quote, detailer entities.Detailer, viewedAt time.Time) {
	// Deliveries outlive the request that triggered them.
	base := context.WithoutCancel(ctx)

	if d.push != nil && detailer.HasPushToken() {
		d.enqueue(job{channel: ChannelPush, sender: d.push, ctx: base, quote: quote, detailer: detailer, viewedAt: viewedAt})
	}
	if d.email != nil && detailer.HasEmail() {
		d.enqueue(job{channel: ChannelEmail, sender: d.email, ctx: base, quote: quote, detailer: detailer, viewedAt: viewedAt})
	}
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Warn().Str("channel", j.channel).Str("quote_id", j.quote.ID).Msg("[notification][dispatcher] closed; dropping")
		return
	}
	select {
	case d.queue <- j:
	default:
		log.Warn().Str("channel", j.channel).Str("quote_id", j.quote.ID).Str("detailer_id", j.detailer.ID).Msg("[notification][dispatcher] queue full; dropping")
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(id, j)
	}
}

func (d *Dispatcher) deliver(worker int, j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.sendTimeout)
	defer cancel()

	if err := j.sender.SendQuoteViewed(ctx, j.quote, j.detailer, j.viewedAt); err != nil {
		log.Error().Err(err).Int("worker", worker).Str("channel", j.channel).Str("quote_id", j.quote.ID).Str("detailer_id", j.detailer.ID).Msg("[notification][dispatcher] delivery failed")
		return
	}
	log.Debug().Int("worker", worker).Str("channel", j.channel).Str("quote_id", j.quote.ID).Msg("[notification][dispatcher] delivered")
}
