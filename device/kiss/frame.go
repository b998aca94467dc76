package kiss

// KISS protocol constants
const (
	FEND  byte = 0xC0 // Frame End
	FESC  byte = 0xDB // Frame Escape
	TFEND byte = 0xDC // Transposed Frame End
	TFESC byte = 0xDD // Transposed Frame Escape
)

// Encode wraps an AX.25 frame in a KISS data frame for the given TNC
// port, escaping any FEND/FESC bytes in the payload.
func Encode(port byte, frame []byte) []byte {
	out := make([]byte, 0, len(frame)+3)
	out = append(out, FEND, port<<4) // low nibble 0 = data frame

	for _, b := range frame {
		switch b {
		case FEND:
			out = append(out, FESC, TFEND)
		case FESC:
			out = append(out, FESC, TFESC)
		default:
			out = append(out, b)
		}
	}

	return append(out, FEND)
}
