package aprs

import (
	"fmt"
	"strconv"
)

// LatitudeToString converts decimal degrees to the fixed-width APRS
// latitude field ddmm.mmH. The APRS position report has fixed width
// fields, so degrees get leading zeros and minutes are always dd.dd.
func LatitudeToString(lat float64) string {
	return encodePosition(lat, 2, 'N', 'S')
}

// LongitudeToString converts decimal degrees to the fixed-width APRS
// longitude field dddmm.mmH.
func LongitudeToString(lon float64) string {
	return encodePosition(lon, 3, 'E', 'W')
}

func encodePosition(deg float64, degWidth int, pos, neg byte) string {
	hemi := pos
	if deg < 0 {
		deg = -deg
		hemi = neg
	}

	whole := int(deg)
	min := (deg - float64(whole)) * 60

	smin := fmt.Sprintf("%05.2f", min)
	// Due to roundoff, 59.999 minutes comes out as "60.00". Carry it
	// into the degrees field so the minutes stay below 60.
	if smin[0] == '6' {
		smin = "00.00"
		whole++
	}

	return fmt.Sprintf("%0*d%s%c", degWidth, whole, smin, hemi)
}

// ParseLatitude converts an APRS latitude field (ddmm.mmN) back to
// decimal degrees.
func ParseLatitude(s string) (float64, error) {
	return parsePosition(s, 2, 'N', 'S')
}

// ParseLongitude converts an APRS longitude field (dddmm.mmW) back to
// decimal degrees.
func ParseLongitude(s string) (float64, error) {
	return parsePosition(s, 3, 'E', 'W')
}

func parsePosition(s string, degWidth int, pos, neg byte) (float64, error) {
	if len(s) != degWidth+6 {
		return 0, fmt.Errorf("position field %q is not %d characters", s, degWidth+6)
	}

	deg, err := strconv.ParseFloat(s[:degWidth], 64)
	if err != nil {
		return 0, fmt.Errorf("bad degrees in %q: %w", s, err)
	}
	min, err := strconv.ParseFloat(s[degWidth:degWidth+5], 64)
	if err != nil {
		return 0, fmt.Errorf("bad minutes in %q: %w", s, err)
	}

	val := deg + min/60.0

	switch s[len(s)-1] {
	case pos:
	case neg:
		val = -val
	default:
		return 0, fmt.Errorf("invalid hemisphere %q in %q", s[len(s)-1:], s)
	}
	return val, nil
}
