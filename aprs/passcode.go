package aprs

import (
	"fmt"
	"strings"
)

// CalculatePasscode generates the APRS-IS passcode for a given callsign.
// It's a port of the common passcode algorithm.
func CalculatePasscode(callsign string) (int, error) {
	// Use uppercase callsign without SSID
	call := strings.ToUpper(strings.Split(callsign, "-")[0])

	if len(call) > 6 || len(call) < 1 {
		return 0, fmt.Errorf("invalid callsign format for passcode: %s", callsign)
	}

	hash := 0x73e2
	var high = true // Alternates between high and low byte

	for _, char := range call {
		shift := 0
		if high {
			shift = 8
		}
		hash ^= int(char) << shift
		high = !high
	}

	return hash & 0x7fff, nil
}
