package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/wifi"
)

// errConnectionTimeout is surfaced when an attempt outlives its deadline
// without a result or a notification.
var errConnectionTimeout = errors.New("Connection timed out (No response from OS)")

// attempt is an in-flight connection. Results and notifications correlate to
// it by SSID; anything arriving after the attempt is cleared is dropped.
type attempt struct {
	target    string
	startedAt time.Time
}

// Model is the root bubbletea model. It owns the view stack, the network
// snapshot, the in-flight attempt and the refresh schedule, and reconciles
// them every tick.
type Model struct {
	backend  wifi.Backend
	logger   *slog.Logger
	events   *wifi.EventQueue
	listener io.Closer

	stack      []Component
	listView   *ListView
	networks   []wifi.Network
	connected  string
	connecting *attempt
	lastErr    error

	refresh    refreshSchedule
	refreshing bool

	spinner       spinner.Model
	loading       bool
	statusMessage string
	width, height int
}

// NewModel creates the starting state of the application and registers for
// OS notifications. A failed registration is recoverable: the model falls
// back to polling and surfaces the error once.
func NewModel(b wifi.Backend, logger *slog.Logger) (*Model, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	listView := NewListView()

	m := &Model{
		backend:       b,
		logger:        logger,
		events:        wifi.NewEventQueue(),
		stack:         []Component{listView},
		listView:      listView,
		spinner:       s,
		loading:       true,
		statusMessage: "Scanning for networks...",
	}
	m.refresh.Boost(startupBurst)

	listener, err := b.Listen(m.events)
	if err != nil {
		logger.Warn("notification registration failed, polling only", "error", err)
		m.lastErr = err
	} else {
		m.listener = listener
	}
	return m, nil
}

// Close releases the notification registration.
func (m *Model) Close() error {
	if m.listener != nil {
		err := m.listener.Close()
		m.listener = nil
		m.events.Close()
		return err
	}
	return nil
}

// Snapshot is the read-only projection of the model state, used by views and
// tests.
type Snapshot struct {
	Networks      []wifi.Network
	ConnectedSSID string
	Connecting    string // target SSID, or ""
	LastError     error
}

func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Networks:      m.networks,
		ConnectedSSID: m.connected,
		LastError:     m.lastErr,
	}
	if m.connecting != nil {
		s.Connecting = m.connecting.target
	}
	return s
}

func (m *Model) Init() tea.Cmd {
	m.refreshing = true
	m.refresh.Fired(time.Now())
	return tea.Batch(m.spinner.Tick, tick(), scanNetworks(m.backend))
}

func (m *Model) modalOpen() bool {
	return len(m.stack) > 1
}

func (m *Model) top() Component {
	return m.stack[len(m.stack)-1]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, c := range m.stack {
			c.Resize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Any key press acknowledges the last error and delays the next
		// automatic refresh.
		m.lastErr = nil
		m.refresh.Touch(time.Now())

	case tickMsg:
		// The tick drives the model, not the views.
		cmds = append(cmds, m.reconcile(time.Time(msg))...)
		cmds = append(cmds, tick())
		return m, tea.Batch(cmds...)

	case networksMsg:
		m.refreshing = false
		m.loading = false
		m.statusMessage = ""
		if msg.err != nil {
			m.lastErr = msg.err
			m.logger.Warn("refresh failed", "error", msg.err)
		} else {
			m.networks = msg.networks
			m.connected = msg.connected
			m.listView.SetNetworks(msg.networks)
		}

	case connectResultMsg:
		cmds = append(cmds, m.onConnectResult(msg)...)

	case opResultMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.logger.Warn("operation failed", "op", msg.op, "ssid", msg.ssid, "error", msg.err)
		} else {
			m.refresh.Boost(disconnectBurst)
			cmds = append(cmds, m.fireRefresh(time.Now())...)
		}

	case passwordMsg:
		m.loading = false
		m.statusMessage = ""
		if msg.err != nil {
			m.lastErr = msg.err
		} else {
			m.stack = append(m.stack, NewQRView(msg.network, msg.password, m.width, m.height))
		}

	case pushViewMsg:
		msg.view.Resize(m.width, m.height)
		m.stack = append(m.stack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if m.modalOpen() {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil

	case scanRequestMsg:
		if m.refresh.ManualAllowed(time.Now()) && !m.refreshing {
			m.refreshing = true
			m.refresh.Fired(time.Now())
			m.loading = true
			m.statusMessage = "Scanning for networks..."
			cmds = append(cmds, scanNetworks(m.backend))
		}

	case abortConnectMsg:
		// The OS may still complete the attempt; the snapshot catches up on
		// the next refresh.
		m.connecting = nil
		m.statusMessage = ""
		m.loading = false

	case connectSavedMsg:
		m.beginAttempt(msg.ssid)
		cmds = append(cmds, connectSaved(m.backend, msg.ssid))

	case connectCredentialMsg:
		m.beginAttempt(msg.ssid)
		cmds = append(cmds, connectWithCredential(m.backend, msg))

	case connectOpenMsg:
		m.beginAttempt(msg.ssid)
		cmds = append(cmds, connectOpen(m.backend, msg.ssid, msg.hidden))

	case disconnectMsg:
		m.statusMessage = "Disconnecting..."
		cmds = append(cmds, disconnect(m.backend))

	case forgetMsg:
		m.statusMessage = fmt.Sprintf("Forgetting '%s'...", msg.ssid)
		cmds = append(cmds, forgetNetwork(m.backend, msg.ssid))

	case setAutoConnectMsg:
		cmds = append(cmds, setAutoConnect(m.backend, msg.ssid, msg.enabled))

	case showPasswordMsg:
		m.loading = true
		m.statusMessage = fmt.Sprintf("Loading key for %s...", msg.network.SSID)
		cmds = append(cmds, fetchPassword(m.backend, msg.network))
	}

	// Delegate to the component on top of the stack.
	top := m.top()
	newComp, cmd := top.Update(msg)
	cmds = append(cmds, cmd)
	if newComp != top {
		m.stack[len(m.stack)-1] = newComp
	}

	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)
	cmds = append(cmds, spinnerCmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) beginAttempt(ssid string) {
	m.connecting = &attempt{target: ssid, startedAt: time.Now()}
	m.loading = true
	m.statusMessage = fmt.Sprintf("Connecting to '%s'...", ssid)
	m.logger.Info("connection attempt started", "ssid", ssid)
}

// onConnectResult handles the worker's report on starting an attempt. An
// error clears the attempt immediately; success means the outcome is still
// pending and will arrive as a notification or show up in a refresh.
func (m *Model) onConnectResult(msg connectResultMsg) []tea.Cmd {
	if m.connecting == nil || m.connecting.target != msg.ssid {
		// Late result from an abandoned attempt.
		return nil
	}
	if msg.err != nil {
		m.connecting = nil
		m.loading = false
		m.statusMessage = ""
		m.lastErr = msg.err
		m.logger.Warn("connection attempt failed to start", "ssid", msg.ssid, "error", msg.err)
		return nil
	}
	m.refresh.Boost(connectBurst)
	return m.fireRefresh(time.Now())
}

// reconcile is the per-tick pass: drain pushed events first, then settle the
// attempt state machine against the snapshot and the clock, then decide
// whether a background refresh is due.
func (m *Model) reconcile(now time.Time) []tea.Cmd {
	var cmds []tea.Cmd

	for _, ev := range m.events.Drain() {
		switch ev.Kind {
		case wifi.EventConnected:
			if m.connecting != nil && m.connecting.target == ev.SSID {
				m.finishAttempt()
				m.logger.Info("connected", "ssid", ev.SSID)
			}
			m.connected = ev.SSID
			m.refresh.Boost(connectBurst)
		case wifi.EventDisconnected:
			if ev.SSID == "" || ev.SSID == m.connected {
				m.connected = ""
			}
			m.refresh.Boost(disconnectBurst)
		case wifi.EventFailed:
			if m.connecting != nil && m.connecting.target == ev.SSID {
				m.finishAttempt()
				m.lastErr = errors.New(ev.ReasonText)
				m.logger.Warn("connection failed", "ssid", ev.SSID, "reason", ev.ReasonText)
				// The failed attempt may have left a profile with bad
				// credentials behind. Remove it so retrying prompts again.
				cmds = append(cmds, forgetQuietly(m.backend, ev.SSID))
			}
		}
	}

	if m.connecting != nil {
		switch {
		case m.connected == m.connecting.target:
			// Fallback detection: the poll saw the connection before any
			// notification arrived.
			m.finishAttempt()
			m.refresh.Boost(connectBurst)
		case now.Sub(m.connecting.startedAt) > connectionTimeout:
			target := m.connecting.target
			m.finishAttempt()
			m.lastErr = errConnectionTimeout
			m.logger.Warn("connection timed out", "ssid", target)
		}
	}

	// Refreshes hold off while one is in flight or a modal has the screen.
	if !m.refreshing && !m.modalOpen() && m.refresh.Due(now, m.listView.Filtering()) {
		cmds = append(cmds, m.fireRefresh(now)...)
	}
	return cmds
}

func (m *Model) finishAttempt() {
	m.connecting = nil
	m.loading = false
	m.statusMessage = ""
}

func (m *Model) fireRefresh(now time.Time) []tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	m.refresh.Fired(now)
	return []tea.Cmd{refreshNetworks(m.backend)}
}

func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(m.top().View())

	if m.loading {
		s.WriteString(fmt.Sprintf("\n\n%s %s", m.spinner.View(),
			lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(m.statusMessage)))
	} else if m.lastErr != nil {
		s.WriteString(fmt.Sprintf("\n\n%s",
			lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.lastErr.Error())))
	} else if m.statusMessage != "" {
		s.WriteString(fmt.Sprintf("\n\n%s",
			lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(m.statusMessage)))
	}
	return s.String()
}
