package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"aprsbeacon/aprs"
	"aprsbeacon/beacon"
	"aprsbeacon/config"
	"aprsbeacon/device/aprsis"
	"aprsbeacon/device/kiss"
	"aprsbeacon/ui/footer"
	"aprsbeacon/ui/header"
	"aprsbeacon/ui/logview"
	"aprsbeacon/ui/statusbar"
)

// --- Constants for Layout ---
const (
	headerHeight = 1
	statusHeight = 1
	footerHeight = 1
)

// Messages fed into the program by the beacon core
type (
	logMsg struct {
		at   time.Time
		line string
	}
	statusMsg         beacon.Status
	countMsg          uint64
	schedulerStateMsg bool
)

// eventSink forwards core events into the bubbletea program. The core
// only ever sees the beacon.Sink interface.
type eventSink struct {
	events chan tea.Msg
}

func (s *eventSink) Log(at time.Time, line string) { s.events <- logMsg{at, line} }
func (s *eventSink) SetStatus(st beacon.Status)    { s.events <- statusMsg(st) }
func (s *eventSink) SetPacketCount(n uint64)       { s.events <- countMsg(n) }

// model holds the application's state
type model struct {
	width  int
	height int

	configPath string
	store      *config.Store
	client     *beacon.Client
	scheduler  *beacon.Scheduler
	sink       beacon.Sink
	events     chan tea.Msg
	autostart  bool

	headerModel    header.Model
	statusbarModel statusbar.Model
	logviewModel   logview.Model
	footerModel    footer.Model
}

// initialModel creates the starting model
func initialModel(configPath string, store *config.Store, client *beacon.Client, scheduler *beacon.Scheduler, sink beacon.Sink, events chan tea.Msg) model {
	conf := store.Get()

	statusbarMod := statusbar.New()
	statusbarMod.SetScheduled(conf.App.Autostart)

	return model{
		width:          80, // Default width
		height:         24, // Default height
		configPath:     configPath,
		store:          store,
		client:         client,
		scheduler:      scheduler,
		sink:           sink,
		events:         events,
		autostart:      conf.App.Autostart,
		headerModel:    header.New(),
		statusbarModel: statusbarMod,
		logviewModel:   logview.New(),
		footerModel:    footer.New(),
	}
}

// listenForEvents is a tea.Cmd that waits for the next core event
func (m model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// sendNow triggers a manual beacon without blocking the UI
func (m model) sendNow() tea.Cmd {
	return func() tea.Msg {
		err := m.client.Send(context.Background(), m.store.Get(), beacon.DefaultMaxRetries, beacon.DefaultRetryDelay)
		if errors.Is(err, beacon.ErrBusy) {
			return logMsg{time.Now(), "a send is already in progress, not queueing another"}
		}
		// Success and failure are reported through the sink already
		return nil
	}
}

// toggleScheduler starts or stops the beacon loop
func (m model) toggleScheduler() tea.Cmd {
	return func() tea.Msg {
		if m.scheduler.Running() {
			m.scheduler.Stop()
		} else {
			m.scheduler.Start()
		}
		return schedulerStateMsg(m.scheduler.Running())
	}
}

// reloadConfig re-reads the config file; the new record applies to the
// next beacon, never the one in flight
func (m model) reloadConfig() tea.Cmd {
	return func() tea.Msg {
		conf, err := config.Load(m.configPath)
		if err != nil {
			return logMsg{time.Now(), fmt.Sprintf("config reload failed: %v", err)}
		}
		if err := conf.Validate(); err != nil {
			return logMsg{time.Now(), fmt.Sprintf("config rejected: %v", err)}
		}
		m.store.Set(conf)
		checkPasscode(conf, m.sink)
		return logMsg{time.Now(), "config reloaded"}
	}
}

func (m model) Init() tea.Cmd {
	if m.autostart {
		m.scheduler.Start()
	}
	return m.listenForEvents()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		headerCmd    tea.Cmd
		statusbarCmd tea.Cmd
		logviewCmd   tea.Cmd
		footerCmd    tea.Cmd
		cmds         []tea.Cmd
	)

	switch msg := msg.(type) {
	case logMsg:
		m.logviewModel.AddLine(msg.at, msg.line)
		cmds = append(cmds, m.listenForEvents())

	case statusMsg:
		m.statusbarModel.SetStatus(beacon.Status(msg))
		cmds = append(cmds, m.listenForEvents())

	case countMsg:
		m.footerModel.SetPackets(uint64(msg))
		cmds = append(cmds, m.listenForEvents())

	case schedulerStateMsg:
		m.statusbarModel.SetScheduled(bool(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logHeight := m.height - headerHeight - statusHeight - footerHeight
		if logHeight < 3 {
			logHeight = 3
		}

		headerSize := tea.WindowSizeMsg{Width: m.width, Height: headerHeight}
		m.headerModel, headerCmd = m.headerModel.Update(headerSize)

		statusSize := tea.WindowSizeMsg{Width: m.width, Height: statusHeight}
		m.statusbarModel, statusbarCmd = m.statusbarModel.Update(statusSize)

		logSize := tea.WindowSizeMsg{Width: m.width, Height: logHeight}
		m.logviewModel, logviewCmd = m.logviewModel.Update(logSize)

		footerSize := tea.WindowSizeMsg{Width: m.width, Height: footerHeight}
		m.footerModel, footerCmd = m.footerModel.Update(footerSize)

		cmds = append(cmds, headerCmd, statusbarCmd, logviewCmd, footerCmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			cmds = append(cmds, m.sendNow())
		case "b":
			cmds = append(cmds, m.toggleScheduler())
		case "r":
			cmds = append(cmds, m.reloadConfig())
		}

	default:
		m.headerModel, headerCmd = m.headerModel.Update(msg)
		m.statusbarModel, statusbarCmd = m.statusbarModel.Update(msg)
		m.logviewModel, logviewCmd = m.logviewModel.Update(msg)
		m.footerModel, footerCmd = m.footerModel.Update(msg)
		cmds = append(cmds, headerCmd, statusbarCmd, logviewCmd, footerCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerModel.View(),
		m.statusbarModel.View(),
		m.logviewModel.View(),
		m.footerModel.View(),
	)
}

// newTransport picks the beacon path from the interface config
func newTransport(conf config.Config, sink beacon.Sink) beacon.Transport {
	if strings.EqualFold(conf.Interface.Type, "KISS") {
		return kiss.New(sink)
	}
	return aprsis.New(sink)
}

// checkPasscode warns when the configured passcode does not match the
// one computed from the callsign. The beacon still transmits with the
// configured value.
func checkPasscode(conf config.Config, sink beacon.Sink) {
	calc, err := aprs.CalculatePasscode(conf.Station.Callsign)
	if err != nil {
		return
	}
	if got, err := strconv.Atoi(conf.Station.Passcode); err != nil || got != calc {
		beacon.Logf(sink, "warning: passcode %q does not match the one computed for %s (%d)",
			conf.Station.Passcode, conf.Station.Callsign, calc)
	}
}

// runHeadless drives the beacon loop without the TUI
func runHeadless(store *config.Store, once, verbose bool) {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	sink := &beacon.LogSink{Logger: logger}

	conf := store.Get()
	checkPasscode(conf, sink)
	client := beacon.NewClient(newTransport(conf, sink), sink)

	if once {
		if err := client.Send(context.Background(), conf, beacon.DefaultMaxRetries, beacon.DefaultRetryDelay); err != nil {
			os.Exit(1)
		}
		return
	}

	scheduler := beacon.NewScheduler(client, store.Get, sink)
	scheduler.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	scheduler.Stop()
}

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to the config file")
	headless := pflag.Bool("headless", false, "run without the TUI")
	once := pflag.Bool("once", false, "send a single beacon and exit")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging (headless mode)")
	pflag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := config.NewStore(conf)

	if *headless || *once {
		runHeadless(store, *once, *verbose)
		return
	}

	events := make(chan tea.Msg, 64)
	sink := &eventSink{events: events}
	client := beacon.NewClient(newTransport(conf, sink), sink)
	scheduler := beacon.NewScheduler(client, store.Get, sink)
	checkPasscode(conf, sink)

	p := tea.NewProgram(initialModel(*configPath, store, client, scheduler, sink, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The quit key only exits the UI; make sure the loop is down too.
	scheduler.Stop()
}
