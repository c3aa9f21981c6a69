package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wifui/wifui/wifi"
)

// Commands wrap blocking backend calls in goroutines so the loop never
// stalls. Each returns exactly one message.

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshNetworks(b wifi.Backend) tea.Cmd {
	return func() tea.Msg {
		networks, err := b.ListNetworks()
		if err != nil {
			return networksMsg{err: err}
		}
		connected, err := b.ConnectedSSID()
		if err != nil {
			return networksMsg{err: err}
		}
		return networksMsg{networks: networks, connected: connected}
	}
}

// scanNetworks triggers a survey, waits for the radio to settle, then
// fetches the refreshed list. Results from a scan are not pushed; the settle
// delay is how long the adapter typically takes to populate them.
func scanNetworks(b wifi.Backend) tea.Cmd {
	return func() tea.Msg {
		if err := b.RequestScan(); err != nil {
			return networksMsg{err: err}
		}
		time.Sleep(scanSettleDelay)
		networks, err := b.ListNetworks()
		if err != nil {
			return networksMsg{err: err}
		}
		connected, err := b.ConnectedSSID()
		if err != nil {
			return networksMsg{err: err}
		}
		return networksMsg{networks: networks, connected: connected}
	}
}

// disconnectBeforeConnect drops any current connection and waits for the
// interface to settle. Starting an attempt while associated makes the
// subsystem race the teardown against the new association.
func disconnectBeforeConnect(b wifi.Backend) error {
	current, err := b.ConnectedSSID()
	if err != nil || current == "" {
		return nil
	}
	if err := b.Disconnect(); err != nil {
		return err
	}
	deadline := time.Now().Add(disconnectSettleTimeout)
	for time.Now().Before(deadline) {
		current, err := b.ConnectedSSID()
		if err != nil || current == "" {
			return nil
		}
		time.Sleep(disconnectPollInterval)
	}
	return nil
}

func connectSaved(b wifi.Backend, ssid string) tea.Cmd {
	return func() tea.Msg {
		if err := disconnectBeforeConnect(b); err != nil {
			return connectResultMsg{ssid: ssid, err: err}
		}
		return connectResultMsg{ssid: ssid, err: b.ConnectSaved(ssid)}
	}
}

func connectWithCredential(b wifi.Backend, msg connectCredentialMsg) tea.Cmd {
	return func() tea.Msg {
		if err := disconnectBeforeConnect(b); err != nil {
			return connectResultMsg{ssid: msg.ssid, err: err}
		}
		err := b.ConnectWithCredential(msg.ssid, msg.security, msg.cipher, msg.password, msg.hidden)
		return connectResultMsg{ssid: msg.ssid, err: err}
	}
}

func connectOpen(b wifi.Backend, ssid string, hidden bool) tea.Cmd {
	return func() tea.Msg {
		if err := disconnectBeforeConnect(b); err != nil {
			return connectResultMsg{ssid: ssid, err: err}
		}
		return connectResultMsg{ssid: ssid, err: b.ConnectOpen(ssid, hidden)}
	}
}

func disconnect(b wifi.Backend) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: "disconnect", err: b.Disconnect()}
	}
}

func forgetNetwork(b wifi.Backend, ssid string) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: "forget", ssid: ssid, err: b.Forget(ssid)}
	}
}

// forgetQuietly removes the profile a failed attempt left behind. Errors are
// swallowed: the user already has a failure on screen and a leftover profile
// is harmless.
func forgetQuietly(b wifi.Backend, ssid string) tea.Cmd {
	return func() tea.Msg {
		_ = b.Forget(ssid)
		return nil
	}
}

func setAutoConnect(b wifi.Backend, ssid string, enabled bool) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: "autoconnect", ssid: ssid, err: b.SetAutoConnect(ssid, enabled)}
	}
}

func fetchPassword(b wifi.Backend, network wifi.Network) tea.Cmd {
	return func() tea.Msg {
		password, err := b.Password(network.SSID)
		return passwordMsg{network: network, password: password, err: err}
	}
}
