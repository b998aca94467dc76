package beacon

import (
	"context"
	"errors"
	"sync"
	"time"

	"aprsbeacon/config"
)

// Retry policy for scheduled beacons. A failed beacon is also retried
// implicitly by the next scheduled interval.
const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = 10 * time.Second
)

// Source returns the configuration snapshot for the next beacon.
type Source func() config.Config

// Scheduler runs the client on a fixed period until stopped. Sends are
// issued synchronously, so they never overlap; a manual send racing a
// scheduled one loses at the client's gate and the tick is skipped.
type Scheduler struct {
	client *Client
	source Source
	sink   Sink

	maxRetries int
	retryDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a stopped scheduler
func NewScheduler(c *Client, src Source, s Sink) *Scheduler {
	return &Scheduler{
		client:     c,
		source:     src,
		sink:       s,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// Start launches the beacon loop. Starting a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	Logf(s.sink, "beacon scheduler started")
	go s.run(ctx, s.done)
}

// Stop cancels the loop and waits for the current iteration to finish.
// Cancellation aborts the inter-beacon sleep and any in-flight network
// wait. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	Logf(s.sink, "beacon scheduler stopped")
}

// Running reports whether the loop is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		// Fresh snapshot each iteration, so config edits apply to the
		// next beacon rather than one in flight.
		conf := s.source()

		err := s.client.Send(ctx, conf, s.maxRetries, s.retryDelay)
		switch {
		case errors.Is(err, ErrBusy):
			Logf(s.sink, "previous send still running, skipping this beacon")
		case err != nil && ctx.Err() == nil:
			// Already logged by the client. The next interval is the
			// recovery path; the loop must not die.
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(conf.Beacon.Interval) * time.Minute):
		}
	}
}
