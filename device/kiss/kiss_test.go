package kiss

import (
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aprsbeacon/beacon"
	"aprsbeacon/config"
)

type testSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *testSink) Log(_ time.Time, line string) {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

func (s *testSink) SetStatus(beacon.Status) {}
func (s *testSink) SetPacketCount(uint64)   {}

func testConfig(device string) config.Config {
	return config.Config{
		Station:   config.StationConfig{Callsign: "N0CALL", SSID: "9"},
		Position:  config.PositionConfig{Latitude: 45.5, Longitude: -73.25},
		Beacon:    config.BeaconConfig{Symbol: "Home", Comment: "test", Interval: 1},
		Interface: config.InterfaceConfig{Type: "KISS", Device: device},
	}
}

func TestSendToNetworkTNC(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	client := New(&testSink{})
	client.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}

	packet, err := client.Send(context.Background(), testConfig(ln.Addr().String()))
	require.NoError(t, err)
	assert.Equal(t, "N0CALL-9>APU25N,WIDE1-1:@120000z4530.00N/07315.00W-test", packet)

	select {
	case data := <-received:
		require.GreaterOrEqual(t, len(data), 4)
		// KISS data frame on port 0
		assert.Equal(t, FEND, data[0])
		assert.Equal(t, byte(0x00), data[1])
		assert.Equal(t, FEND, data[len(data)-1])
		// The info field rides along unescaped (plain ASCII)
		assert.Contains(t, string(data), "@120000z4530.00N/07315.00W-test")
	case <-time.After(2 * time.Second):
		t.Fatal("TNC never received the frame")
	}
}

func TestSendConnectFailed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	client := New(&testSink{})
	_, err = client.Send(context.Background(), testConfig(addr))
	require.Error(t, err)
	assert.ErrorIs(t, err, beacon.ErrConnectFailed)
}

func TestSendNoDevice(t *testing.T) {
	client := New(&testSink{})
	_, err := client.Send(context.Background(), testConfig(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, beacon.ErrConnectFailed)
}

func TestSendBadStation(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			io.Copy(io.Discard, conn)
			conn.Close()
		}
	}()

	conf := testConfig(ln.Addr().String())
	conf.Station.Callsign = "WAYTOOLONG"

	client := New(&testSink{})
	_, err = client.Send(context.Background(), conf)
	require.Error(t, err)
	assert.ErrorIs(t, err, beacon.ErrTransmitFailed)
}
