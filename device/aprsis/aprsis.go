package aprsis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"aprsbeacon/aprs"
	"aprsbeacon/beacon"
	"aprsbeacon/config"
)

// Client identification sent in the login line
const (
	appName    = "aprsbeacon"
	appVersion = "0.1"
)

// Client beacons through an APRS-IS server. Every Send opens its own
// TCP connection, performs the login exchange, transmits one packet,
// and closes; nothing is reused between beacons.
type Client struct {
	sink beacon.Sink

	// Session timing. The settle delay matters: the aggregator is known
	// to drop data sent immediately after authentication.
	connectTimeout time.Duration
	loginWait      time.Duration
	settleDelay    time.Duration
	flushDelay     time.Duration

	now func() time.Time
}

// New creates a client with the standard session timing
func New(sink beacon.Sink) *Client {
	return &Client{
		sink:           sink,
		connectTimeout: 10 * time.Second,
		loginWait:      5 * time.Second,
		settleDelay:    2 * time.Second,
		flushDelay:     500 * time.Millisecond,
		now:            time.Now,
	}
}

func (c *Client) Name() string {
	return "APRS-IS"
}

// Send performs one complete beacon exchange:
// connect, login, wait for logresp, settle, transmit, flush, close.
func (c *Client) Send(ctx context.Context, conf config.Config) (string, error) {
	addr := conf.Server.Addr()

	dialer := net.Dialer{Timeout: c.connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", beacon.ErrConnectFailed, addr, err)
	}
	defer conn.Close()

	// Cancellation yanks the connection deadline so a blocked read or
	// write aborts immediately instead of waiting out its timeout.
	unhook := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer unhook()

	login := fmt.Sprintf("user %s pass %s vers %s %s\n",
		conf.Station.Callsign, conf.Station.Passcode, appName, appVersion)
	if _, err := conn.Write([]byte(login)); err != nil {
		return "", fmt.Errorf("%w: sending login to %s: %v", beacon.ErrConnectFailed, addr, err)
	}

	if err := c.awaitAck(conn); err != nil {
		return "", err
	}

	if err := sleep(ctx, c.settleDelay); err != nil {
		return "", err
	}

	packet := aprs.BuildPacket(
		aprs.Station{Callsign: conf.Station.Callsign, SSID: conf.Station.SSID},
		aprs.Position{Latitude: conf.Position.Latitude, Longitude: conf.Position.Longitude},
		conf.Beacon.Symbol,
		conf.Beacon.Comment,
		c.now(),
	)
	if _, err := conn.Write([]byte(packet + "\n")); err != nil {
		return "", fmt.Errorf("%w: %v", beacon.ErrTransmitFailed, err)
	}

	// Give the network stack a moment to deliver the write before the
	// deferred close tears the socket down.
	if err := sleep(ctx, c.flushDelay); err != nil {
		return "", err
	}

	return packet, nil
}

// awaitAck reads server lines until one contains "logresp" or the wait
// window closes. The grammar beyond that token is not parsed.
func (c *Client) awaitAck(conn net.Conn) error {
	conn.SetReadDeadline(time.Now().Add(c.loginWait))
	defer conn.SetReadDeadline(time.Time{})

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return fmt.Errorf("%w: no logresp within %s", beacon.ErrLoginNotAcknowledged, c.loginWait)
			}
			if err == io.EOF {
				return fmt.Errorf("%w: connection closed during login", beacon.ErrLoginNotAcknowledged)
			}
			return fmt.Errorf("%w: reading login response: %v", beacon.ErrLoginNotAcknowledged, err)
		}

		line = strings.TrimSpace(line)
		if strings.Contains(strings.ToLower(line), "logresp") {
			beacon.Logf(c.sink, "login acknowledged: %s", line)
			return nil
		}
		// Server banners and comments arrive before the acknowledgement;
		// keep reading.
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
