package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/qrwifi"
	"github.com/wifui/wifui/wifi"
)

// QRView shows a join QR code for a saved network. Any key dismisses it.
type QRView struct {
	network       wifi.Network
	code          string
	err           error
	width, height int
}

func NewQRView(n wifi.Network, password wifi.Secret, width, height int) *QRView {
	code, err := qrwifi.Render(n.SSID, password, n.Security, false)
	return &QRView{network: n, code: code, err: err, width: width, height: height}
}

func (v *QRView) Init() tea.Cmd { return nil }

func (v *QRView) Resize(width, height int) {
	v.width = width
	v.height = height
}

func (v *QRView) Update(msg tea.Msg) (Component, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return v, popView
	}
	return v, nil
}

func (v *QRView) View() string {
	var body string
	if v.err != nil {
		body = lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(v.err.Error())
	} else {
		body = fmt.Sprintf("Scan to join '%s'\n\n%s", v.network.SSID, v.code)
	}
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		BorderForeground(CurrentTheme.Primary).
		Render(body)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}
