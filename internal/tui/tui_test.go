package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wifui/wifui/wifi"
	"github.com/wifui/wifui/wifi/mock"
)

func newTestModel(t *testing.T) (*Model, *mock.Backend) {
	t.Helper()
	b := mock.New()
	b.ActionSleep = 0
	b.PushEvents = false // tests inject events explicitly
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := NewModel(b, logger)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m, b
}

// runCmds executes returned commands synchronously, feeding any produced
// messages back into the model, so a test can settle the full round trip.
func runCmds(t *testing.T, m *Model, cmds []tea.Cmd) {
	t.Helper()
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if msg := cmd(); msg != nil {
			m.Update(msg)
		}
	}
}

func TestPushedConnectedEventFinishesAttempt(t *testing.T) {
	m, b := newTestModel(t)
	m.beginAttempt("Cafe")

	b.PushEvent(wifi.Connected("Cafe"))
	m.reconcile(time.Now())

	snap := m.Snapshot()
	if snap.Connecting != "" {
		t.Errorf("still connecting to %q", snap.Connecting)
	}
	if snap.ConnectedSSID != "Cafe" {
		t.Errorf("connected = %q", snap.ConnectedSSID)
	}
	if snap.LastError != nil {
		t.Errorf("unexpected error %v", snap.LastError)
	}
}

func TestPushedFailureSurfacesReasonAndForgets(t *testing.T) {
	m, b := newTestModel(t)
	m.beginAttempt("Home")

	b.PushEvent(wifi.Failed("Home", 0x00050004))
	cmds := m.reconcile(time.Now())

	snap := m.Snapshot()
	if snap.Connecting != "" {
		t.Fatalf("still connecting to %q", snap.Connecting)
	}
	if snap.LastError == nil || snap.LastError.Error() != "Incorrect Password" {
		t.Errorf("error = %v, want Incorrect Password", snap.LastError)
	}

	// The stale profile cleanup runs as a command.
	runCmds(t, m, cmds)
	found := false
	for _, op := range b.Ops {
		if op == "Forget(Home)" {
			found = true
		}
	}
	if !found {
		t.Errorf("failed attempt did not clean up its profile; ops = %v", b.Ops)
	}
}

func TestFailureForOtherNetworkIsIgnored(t *testing.T) {
	m, b := newTestModel(t)
	m.beginAttempt("Home")

	b.PushEvent(wifi.Failed("Neighbor", 1))
	m.reconcile(time.Now())

	snap := m.Snapshot()
	if snap.Connecting != "Home" {
		t.Errorf("attempt dropped by an unrelated failure; connecting = %q", snap.Connecting)
	}
	if snap.LastError != nil {
		t.Errorf("unrelated failure surfaced: %v", snap.LastError)
	}
}

func TestConnectionTimeout(t *testing.T) {
	m, _ := newTestModel(t)
	m.beginAttempt("Slow")
	m.connecting.startedAt = time.Now().Add(-connectionTimeout - time.Second)

	m.reconcile(time.Now())

	snap := m.Snapshot()
	if snap.Connecting != "" {
		t.Fatal("attempt should have timed out")
	}
	if snap.LastError == nil || !strings.Contains(snap.LastError.Error(), "timed out") {
		t.Errorf("error = %v, want timeout", snap.LastError)
	}
}

func TestPolledFallbackDetection(t *testing.T) {
	m, _ := newTestModel(t)
	m.beginAttempt("Cafe")

	// No notification arrives, but a refresh reports the connection.
	m.Update(networksMsg{networks: nil, connected: "Cafe"})
	m.reconcile(time.Now())

	snap := m.Snapshot()
	if snap.Connecting != "" {
		t.Errorf("polled state did not finish the attempt; connecting = %q", snap.Connecting)
	}
}

func TestLateResultAfterTimeoutIsDropped(t *testing.T) {
	m, _ := newTestModel(t)
	m.beginAttempt("Slow")
	m.connecting.startedAt = time.Now().Add(-connectionTimeout - time.Second)
	m.reconcile(time.Now()) // times out

	// The worker finally reports a startup failure. Too late; dropped.
	m.Update(connectResultMsg{ssid: "Slow", err: wifi.NewError(wifi.KindConnection, 5)})

	snap := m.Snapshot()
	if snap.LastError == nil || !strings.Contains(snap.LastError.Error(), "timed out") {
		t.Errorf("late result replaced the timeout error: %v", snap.LastError)
	}
}

func TestCommandErrorReturnsToIdleImmediately(t *testing.T) {
	m, _ := newTestModel(t)
	m.beginAttempt("Cafe")

	boom := wifi.NewError(wifi.KindProfileAdd, 87)
	m.Update(connectResultMsg{ssid: "Cafe", err: boom})

	snap := m.Snapshot()
	if snap.Connecting != "" {
		t.Error("attempt should be cleared on a command error")
	}
	if snap.LastError == nil {
		t.Error("command error not surfaced")
	}
}

func TestAbortClearsAttempt(t *testing.T) {
	m, _ := newTestModel(t)
	m.beginAttempt("Cafe")

	m.Update(abortConnectMsg{})

	if snap := m.Snapshot(); snap.Connecting != "" {
		t.Errorf("abort left connecting = %q", snap.Connecting)
	}
}

func TestKeyPressClearsLastError(t *testing.T) {
	m, _ := newTestModel(t)
	m.lastErr = errConnectionTimeout

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	if snap := m.Snapshot(); snap.LastError != nil {
		t.Errorf("key press did not clear the error: %v", snap.LastError)
	}
}

func TestRefreshSuppressedWhileModalOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m.refresh.Fired(time.Now().Add(-time.Minute)) // long overdue
	m.Update(pushViewMsg{view: NewPasswordView(wifi.Network{SSID: "Cafe"})})

	cmds := m.reconcile(time.Now())
	if len(cmds) != 0 {
		t.Error("refresh fired while a modal was open")
	}

	m.Update(popViewMsg{})
	cmds = m.reconcile(time.Now())
	if len(cmds) == 0 {
		t.Error("refresh did not resume after the modal closed")
	}
}

func TestNetworksMsgUpdatesSnapshot(t *testing.T) {
	m, _ := newTestModel(t)
	networks := []wifi.Network{{SSID: "Cafe", Signal: 70}}
	m.Update(networksMsg{networks: networks, connected: "Cafe"})

	snap := m.Snapshot()
	if len(snap.Networks) != 1 || snap.Networks[0].SSID != "Cafe" {
		t.Errorf("networks = %+v", snap.Networks)
	}
	if snap.ConnectedSSID != "Cafe" {
		t.Errorf("connected = %q", snap.ConnectedSSID)
	}
}
