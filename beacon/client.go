package beacon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"aprsbeacon/config"
)

// Failure classes surfaced by a send. Transports wrap the first three;
// the client wraps the last one around whatever error exhausted the
// retries.
var (
	ErrConnectFailed        = errors.New("connect failed")
	ErrLoginNotAcknowledged = errors.New("server did not acknowledge login")
	ErrTransmitFailed       = errors.New("transmit failed")
	ErrRetriesExhausted     = errors.New("retries exhausted")

	// ErrBusy means a send was requested while another one (including
	// its retries) is still in progress. The request is rejected, not
	// queued.
	ErrBusy = errors.New("a send is already in progress")
)

// Transport delivers one beacon over a fresh connection and reports the
// packet text it sent. Implementations must not keep the connection
// alive between calls.
type Transport interface {
	Name() string
	Send(ctx context.Context, conf config.Config) (packet string, err error)
}

// Client owns the retry policy, the packet counter, and the
// single-send-at-a-time gate shared by scheduled and manual triggers.
type Client struct {
	transport Transport
	sink      Sink

	busy  sync.Mutex
	count atomic.Uint64
}

// NewClient wires a transport to a sink
func NewClient(t Transport, s Sink) *Client {
	return &Client{transport: t, sink: s}
}

// PacketCount reports how many beacons have been sent successfully
// since the client was created.
func (c *Client) PacketCount() uint64 {
	return c.count.Load()
}

// Send transmits one beacon, retrying transient failures up to
// maxRetries times with a fixed delay between attempts. Each attempt
// opens, uses, and closes its own connection. The counter is bumped
// only after a fully successful send.
func (c *Client) Send(ctx context.Context, conf config.Config, maxRetries int, retryDelay time.Duration) error {
	if !c.busy.TryLock() {
		return ErrBusy
	}
	defer c.busy.Unlock()

	c.sink.SetStatus(StatusSending)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			Logf(c.sink, "retrying (%d/%d) after error: %v", attempt, maxRetries, lastErr)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				c.sink.SetStatus(StatusError)
				return ctx.Err()
			}
		}

		packet, err := c.transport.Send(ctx, conf)
		if err == nil {
			n := c.count.Add(1)
			c.sink.SetPacketCount(n)
			Logf(c.sink, "TX via %s: %s", c.transport.Name(), packet)
			c.sink.SetStatus(StatusIdle)
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			c.sink.SetStatus(StatusError)
			return fmt.Errorf("send aborted: %w", ctx.Err())
		}
	}

	c.sink.SetStatus(StatusError)
	err := fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, maxRetries+1, lastErr)
	Logf(c.sink, "beacon failed: %v", err)
	return err
}
