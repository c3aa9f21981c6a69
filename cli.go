package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wifui/wifui/internal/tui"
	"github.com/wifui/wifui/wifi"
)

// tuiLogger is wired in main before the TUI starts.
var tuiLogger *slog.Logger

func runTUI(b wifi.Backend) error {
	m, err := tui.NewModel(b, tuiLogger)
	if err != nil {
		return fmt.Errorf("error initializing model: %w", err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func formatNetwork(n wifi.Network) string {
	var parts []string
	if n.Signal > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", n.Signal))
	}
	parts = append(parts, n.Security.String())
	if band := wifi.Band(n.FrequencyKHz); band != "" {
		parts = append(parts, band)
	}
	if n.IsSaved {
		parts = append(parts, "saved")
	}
	if n.AutoConnect {
		parts = append(parts, "auto")
	}
	if n.IsConnected {
		parts = append(parts, "connected")
	}
	return strings.Join(parts, ", ")
}

func runList(w io.Writer, jsonOut bool, b wifi.Backend) error {
	networks, err := b.ListNetworks()
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(networks)
	}
	for _, n := range networks {
		fmt.Fprintf(w, "%s\t%s\n", n.SSID, formatNetwork(n))
	}
	return nil
}

func runShow(w io.Writer, jsonOut bool, ssid string, b wifi.Backend) error {
	networks, err := b.ListNetworks()
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	for _, n := range networks {
		if n.SSID != ssid {
			continue
		}
		var passphrase string
		if n.IsSaved {
			secret, err := b.Password(ssid)
			if err != nil {
				return fmt.Errorf("failed to get network key: %w", err)
			}
			passphrase = secret.Expose()
		}

		if jsonOut {
			out := struct {
				wifi.Network
				Passphrase string `json:"Passphrase,omitempty"`
			}{Network: n, Passphrase: passphrase}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Fprintf(w, "SSID: %s\n", n.SSID)
		fmt.Fprintf(w, "Security: %s\n", n.Security)
		fmt.Fprintf(w, "Passphrase: %s\n", passphrase)
		fmt.Fprintf(w, "Connected: %t\n", n.IsConnected)
		fmt.Fprintf(w, "Saved: %t\n", n.IsSaved)
		fmt.Fprintf(w, "AutoConnect: %t\n", n.AutoConnect)
		fmt.Fprintf(w, "Signal: %d%%\n", n.Signal)
		if n.Channel > 0 {
			fmt.Fprintf(w, "Channel: %d (%s)\n", n.Channel, wifi.Band(n.FrequencyKHz))
		}
		if n.LinkSpeedMbps > 0 {
			fmt.Fprintf(w, "Link Speed: %d Mbps\n", n.LinkSpeedMbps)
		}
		return nil
	}
	return showStoredProfile(w, jsonOut, ssid, b)
}

// showStoredProfile covers remembered networks that are out of range: they
// have no scan entry, but the stored profile still exists.
func showStoredProfile(w io.Writer, jsonOut bool, ssid string, b wifi.Backend) error {
	profiles, err := b.SavedProfiles()
	if err != nil {
		return fmt.Errorf("failed to list saved profiles: %w", err)
	}
	for _, p := range profiles {
		if p.Name != ssid {
			continue
		}
		if jsonOut {
			out := struct {
				SSID        string
				Security    string
				AutoConnect bool
				Passphrase  string `json:",omitempty"`
			}{SSID: p.Name, Security: p.Security.String(), AutoConnect: p.AutoConnect, Passphrase: p.KeyMaterial.Expose()}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		fmt.Fprintf(w, "SSID: %s\n", p.Name)
		fmt.Fprintf(w, "Security: %s\n", p.Security)
		fmt.Fprintf(w, "Passphrase: %s\n", p.KeyMaterial.Expose())
		fmt.Fprintf(w, "Saved: true (out of range)\n")
		fmt.Fprintf(w, "AutoConnect: %t\n", p.AutoConnect)
		return nil
	}
	return fmt.Errorf("network not found: %s", ssid)
}

func runConnect(w io.Writer, ssid, passphrase string, security wifi.Security, hidden bool, b wifi.Backend) error {
	var err error
	switch {
	case security.IsOpen():
		err = b.ConnectOpen(ssid, hidden)
	case passphrase == "":
		err = b.ConnectSaved(ssid)
	default:
		err = b.ConnectWithCredential(ssid, security, "", wifi.NewSecret(passphrase), hidden)
	}
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	fmt.Fprintf(w, "Connecting to '%s'...\n", ssid)
	return nil
}
