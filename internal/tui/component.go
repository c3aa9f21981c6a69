// Package tui is the foreground control loop: a bubbletea program that stays
// responsive while every wireless operation runs on its own goroutine. The
// model reconciles three inputs on a fixed tick: pushed OS notifications,
// command results, and deadlines.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wifui/wifui/wifi"
)

// Component is the interface for a TUI component. Components live on a view
// stack; the top one gets input.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string
	Resize(width, height int)
}

// Messages from views to the root model.
type (
	// pushViewMsg puts a new component on top of the stack.
	pushViewMsg struct{ view Component }
	// popViewMsg removes the top component.
	popViewMsg struct{}

	// scanRequestMsg asks for a manual rescan.
	scanRequestMsg struct{}
	// abortConnectMsg abandons the in-flight connection attempt. The OS keeps
	// trying; the UI stops waiting.
	abortConnectMsg struct{}

	connectSavedMsg struct{ ssid string }

	connectCredentialMsg struct {
		ssid     string
		security wifi.Security
		cipher   string
		password wifi.Secret
		hidden   bool
	}

	connectOpenMsg struct {
		ssid   string
		hidden bool
	}

	disconnectMsg struct{}

	forgetMsg struct{ ssid string }

	setAutoConnectMsg struct {
		ssid    string
		enabled bool
	}

	// showPasswordMsg asks for the stored key of a saved network, to be shown
	// as a join QR code.
	showPasswordMsg struct{ network wifi.Network }
)

// Messages from worker goroutines back to the root model.
type (
	// networksMsg carries a fresh snapshot of the network list.
	networksMsg struct {
		networks  []wifi.Network
		connected string
		err       error
	}

	// connectResultMsg reports whether a connection attempt could be started.
	// A nil err means the attempt is in flight, not that it succeeded.
	connectResultMsg struct {
		ssid string
		err  error
	}

	// opResultMsg reports completion of a fire-and-forget operation.
	opResultMsg struct {
		op   string
		ssid string
		err  error
	}

	passwordMsg struct {
		network  wifi.Network
		password wifi.Secret
		err      error
	}

	tickMsg time.Time
)

func pushView(view Component) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: view} }
}

func popView() tea.Msg { return popViewMsg{} }

// networkItem adapts a network for the bubbles list.
type networkItem struct {
	wifi.Network
}

func (i networkItem) Title() string { return i.SSID }

func (i networkItem) Description() string {
	if i.Signal > 0 {
		return fmt.Sprintf("%d%%", i.Signal)
	}
	return ""
}

func (i networkItem) FilterValue() string { return i.SSID }
