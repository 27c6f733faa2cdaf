package sqs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Handler processes one received message. A nil return deletes the message
// from the queue; an error leaves it to reappear after its visibility
// timeout.
type Handler func(ctx context.Context, msg *Message) error

// Poller long-polls a queue with a fixed set of workers and hands each
// received message to a Handler. Every receive is an independent, freshly
// signed request; a failed poll is logged and the worker polls again after a
// short pause.
type Poller struct {
	client   *Client
	queueURL string
	workers  int
	receive  ReceiveOptions
	errPause time.Duration
	logger   zerolog.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithWorkers sets the number of concurrent polling workers (default 1).
func WithWorkers(n int) PollerOption {
	return func(p *Poller) { p.workers = n }
}

// WithReceiveOptions tunes the underlying ReceiveMessage calls.
func WithReceiveOptions(opts ReceiveOptions) PollerOption {
	return func(p *Poller) { p.receive = opts }
}

// WithPollerLogger attaches a logger.
func WithPollerLogger(logger zerolog.Logger) PollerOption {
	return func(p *Poller) { p.logger = logger.With().Str("component", "poller").Logger() }
}

// NewPoller creates a Poller for the queue at queueURL.
func NewPoller(client *Client, queueURL string, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		queueURL: queueURL,
		workers:  1,
		errPause: time.Second,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

// Run polls until ctx is cancelled, then returns ctx's error. Handler errors
// do not stop the poller; the message simply becomes visible again.
func (p *Poller) Run(ctx context.Context, handle Handler) error {
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		worker := i
		group.Go(func() error {
			return p.runWorker(ctx, worker, handle)
		})
	}
	return group.Wait()
}

func (p *Poller) runWorker(ctx context.Context, worker int, handle Handler) error {
	logger := p.logger.With().Int("worker", worker).Logger()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := p.client.ReceiveMessage(ctx, p.queueURL, p.receive)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn().Err(err).Msg("receive failed")
			p.pause(ctx)
			continue
		}
		if resp.StatusCode != 200 {
			logger.Warn().Int("status", resp.StatusCode).Msg("receive rejected")
			p.pause(ctx)
			continue
		}

		result, err := ParseResponse(resp.Body)
		if err != nil {
			logger.Warn().Err(err).Msg("unparsable receive response")
			continue
		}
		if result.Kind != ResultMessage || result.Message == nil {
			continue
		}

		msg := result.Message
		if err := handle(ctx, msg); err != nil {
			logger.Warn().Err(err).Msg("handler failed, message left visible")
			continue
		}

		if _, err := p.client.DeleteMessage(ctx, p.queueURL, msg.ReceiptHandle); err != nil {
			logger.Warn().Err(err).Msg("delete failed, message will reappear")
		}
	}
}

// pause sleeps briefly after a failed poll, aborting early on cancellation.
func (p *Poller) pause(ctx context.Context) {
	timer := time.NewTimer(p.errPause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
