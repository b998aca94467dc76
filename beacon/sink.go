package beacon

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the coarse state shown to the user.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusSending:
		return "Sending"
	case StatusError:
		return "Error"
	}
	return "Unknown"
}

// Sink receives human-readable progress from the beacon core. The core
// never depends on a concrete display; the TUI and the headless logger
// each provide their own implementation.
type Sink interface {
	Log(at time.Time, line string)
	SetStatus(s Status)
	SetPacketCount(n uint64)
}

// Logf formats a line and stamps it with the current time.
func Logf(s Sink, format string, args ...any) {
	s.Log(time.Now(), fmt.Sprintf(format, args...))
}

// LogSink routes sink events to a logger, for headless operation.
type LogSink struct {
	Logger *log.Logger
}

func (s *LogSink) Log(_ time.Time, line string) {
	s.Logger.Info(line)
}

func (s *LogSink) SetStatus(st Status) {
	s.Logger.Debug("status changed", "status", st.String())
}

func (s *LogSink) SetPacketCount(n uint64) {
	s.Logger.Debug("packet counter", "count", n)
}
