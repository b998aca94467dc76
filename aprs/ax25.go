package aprs

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// AX.25 constants for UI frames
const (
	controlUI   byte = 0x03
	pidNoLayer3 byte = 0xF0
)

// EncodeFrame builds an AX.25 UI frame for transmission through a TNC:
// destination and source addresses, optional digipeater path, control
// and PID bytes, then the information field.
func EncodeFrame(dest, src string, path []string, info []byte) ([]byte, error) {
	addrs := make([]string, 0, 2+len(path))
	addrs = append(addrs, dest, src)
	addrs = append(addrs, path...)

	var b bytes.Buffer
	for i, addr := range addrs {
		enc, err := encodeAddress(addr, i == len(addrs)-1)
		if err != nil {
			return nil, err
		}
		b.Write(enc)
	}

	b.WriteByte(controlUI)
	b.WriteByte(pidNoLayer3)
	b.Write(info)

	return b.Bytes(), nil
}

// encodeAddress packs CALL or CALL-SSID into the 7-byte shifted-ASCII
// address field. The low bit of the SSID byte marks the end of the
// address chain.
func encodeAddress(addr string, last bool) ([]byte, error) {
	call := addr
	ssid := 0
	if i := strings.IndexByte(addr, '-'); i >= 0 {
		call = addr[:i]
		n, err := strconv.Atoi(addr[i+1:])
		if err != nil || n < 0 || n > 15 {
			return nil, fmt.Errorf("invalid SSID in address %q", addr)
		}
		ssid = n
	}

	call = strings.ToUpper(call)
	if len(call) < 1 || len(call) > 6 {
		return nil, fmt.Errorf("callsign %q must be 1-6 characters", call)
	}

	out := make([]byte, 7)
	for i := 0; i < 6; i++ {
		c := byte(' ')
		if i < len(call) {
			c = call[i]
		}
		if c < ' ' || c > '~' {
			return nil, fmt.Errorf("invalid character in callsign %q", call)
		}
		out[i] = c << 1
	}

	out[6] = 0x60 | byte(ssid)<<1
	if last {
		out[6] |= 0x01
	}
	return out, nil
}
