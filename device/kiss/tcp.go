package kiss

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"
)

// openTCP dials a network KISS TNC at the given address
// (e.g. "192.168.1.30:8001")
func openTCP(ctx context.Context, address string) (io.ReadWriteCloser, error) {
	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to KISS TNC at %s: %w", address, err)
	}
	return conn, nil
}
