package aprs

import (
	"sort"
	"strings"
	"time"
)

// Destination is the software identifier every beacon carries in its
// AX.25 destination field.
const Destination = "APU25N"

// DefaultSymbol is used when a symbol label is not in the table.
const DefaultSymbol byte = '-'

// symbolTable maps the human-readable labels offered in the config to
// APRS primary-table symbol characters.
var symbolTable = map[string]byte{
	"Antenna":      'r',
	"Ballon":       'O',
	"Home":         '-',
	"WX Station":   '_',
	"Dish antenna": '`',
}

// SymbolChar looks up the symbol character for a label, falling back to
// the generic icon for anything unrecognized.
func SymbolChar(label string) byte {
	if c, ok := symbolTable[label]; ok {
		return c
	}
	return DefaultSymbol
}

// SymbolLabels returns the known symbol labels in a stable order.
func SymbolLabels() []string {
	labels := make([]string, 0, len(symbolTable))
	for l := range symbolTable {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Station identifies the transmitting station.
type Station struct {
	Callsign string
	SSID     string
}

// Address returns CALL-SSID, or just CALL when the SSID is empty.
func (s Station) Address() string {
	if s.SSID == "" {
		return s.Callsign
	}
	return s.Callsign + "-" + s.SSID
}

// Position is a location in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// BuildBody builds the information field of a timestamped position
// report: @HHMMSSzddmm.mmN/dddmm.mmWS followed by the comment verbatim.
// The comment is not filtered here; that is the caller's job.
func BuildBody(pos Position, symbol, comment string, at time.Time) string {
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(at.UTC().Format("150405"))
	b.WriteByte('z')
	b.WriteString(LatitudeToString(pos.Latitude))
	b.WriteByte('/')
	b.WriteString(LongitudeToString(pos.Longitude))
	b.WriteByte(SymbolChar(symbol))
	b.WriteString(comment)
	return b.String()
}

// BuildPacket assembles the full APRS-IS line for one beacon. Pure
// function of its inputs; safe to call concurrently.
func BuildPacket(st Station, pos Position, symbol, comment string, at time.Time) string {
	return st.Address() + ">" + Destination + ",TCPIP*:" + BuildBody(pos, symbol, comment, at)
}
