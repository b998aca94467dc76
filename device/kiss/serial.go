package kiss

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// openSerial opens a connection to a serial KISS TNC
func openSerial(devicePath string) (io.ReadWriteCloser, error) {
	// TODO: The baud rate should be configurable in config.toml.
	// 9600 is a common rate for TNCs.
	mode := &serial.Mode{
		BaudRate: 9600,
	}

	port, err := serial.Open(devicePath, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", devicePath, err)
	}

	if err := port.SetReadTimeout(1 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return port, nil
}
