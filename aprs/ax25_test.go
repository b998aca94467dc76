package aprs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrame(t *testing.T) {
	frame, err := EncodeFrame("APU25N", "N0CALL-9", []string{"WIDE1-1"}, []byte("@hi"))
	require.NoError(t, err)

	expected := []byte{
		// APU25N, SSID 0
		0x82, 0xA0, 0xAA, 0x64, 0x6A, 0x9C, 0x60,
		// N0CALL, SSID 9
		0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x72,
		// WIDE1, SSID 1, end of address chain
		0xAE, 0x92, 0x88, 0x8A, 0x62, 0x40, 0x63,
		// UI control, no layer 3
		0x03, 0xF0,
		'@', 'h', 'i',
	}
	assert.Equal(t, expected, frame)
}

func TestEncodeFrameNoPath(t *testing.T) {
	frame, err := EncodeFrame("APU25N", "N0CALL", nil, []byte("x"))
	require.NoError(t, err)

	// With no digi path the source address terminates the chain
	assert.Equal(t, byte(0x61), frame[13])
	assert.Equal(t, byte(0x03), frame[14])
	assert.Equal(t, byte(0xF0), frame[15])
	assert.Equal(t, byte('x'), frame[16])
}

func TestEncodeFrameInvalidAddresses(t *testing.T) {
	_, err := EncodeFrame("APU25N", "N0CALL-16", nil, nil)
	assert.Error(t, err)

	_, err = EncodeFrame("APU25N", "N0CALL-x", nil, nil)
	assert.Error(t, err)

	_, err = EncodeFrame("APU25N", "TOOLONGCALL", nil, nil)
	assert.Error(t, err)

	_, err = EncodeFrame("", "N0CALL", nil, nil)
	assert.Error(t, err)
}
