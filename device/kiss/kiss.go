package kiss

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"aprsbeacon/aprs"
	"aprsbeacon/beacon"
	"aprsbeacon/config"
)

// rfPath is the digipeater path used for beacons transmitted over RF.
// TCPIP* only makes sense on the internet side.
var rfPath = []string{"WIDE1-1"}

// Client beacons through a KISS TNC, either a serial device or a
// network one. Like the APRS-IS client, every Send opens and closes
// its own connection.
type Client struct {
	sink beacon.Sink
	now  func() time.Time
}

// New creates a KISS beacon client
func New(sink beacon.Sink) *Client {
	return &Client{sink: sink, now: time.Now}
}

func (c *Client) Name() string {
	return "KISS"
}

// Send frames one position report as an AX.25 UI packet and writes it
// to the TNC. A device string containing ':' is treated as a network
// TNC, anything else as a serial path.
func (c *Client) Send(ctx context.Context, conf config.Config) (string, error) {
	conn, err := open(ctx, conf.Interface.Device)
	if err != nil {
		return "", fmt.Errorf("%w: %v", beacon.ErrConnectFailed, err)
	}
	defer conn.Close()

	station := aprs.Station{Callsign: conf.Station.Callsign, SSID: conf.Station.SSID}
	body := aprs.BuildBody(
		aprs.Position{Latitude: conf.Position.Latitude, Longitude: conf.Position.Longitude},
		conf.Beacon.Symbol,
		conf.Beacon.Comment,
		c.now(),
	)

	frame, err := aprs.EncodeFrame(aprs.Destination, station.Address(), rfPath, []byte(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", beacon.ErrTransmitFailed, err)
	}

	if _, err := conn.Write(Encode(0, frame)); err != nil {
		return "", fmt.Errorf("%w: %v", beacon.ErrTransmitFailed, err)
	}

	// Monitor-style text form for the log
	return fmt.Sprintf("%s>%s,%s:%s", station.Address(), aprs.Destination, strings.Join(rfPath, ","), body), nil
}

func open(ctx context.Context, device string) (io.ReadWriteCloser, error) {
	if device == "" {
		return nil, fmt.Errorf("no KISS device configured")
	}
	if strings.Contains(device, ":") {
		return openTCP(ctx, device)
	}
	return openSerial(device)
}
