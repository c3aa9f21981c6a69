package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/wifi"
)

// ForgetView confirms removing a saved network's credentials.
type ForgetView struct {
	network       wifi.Network
	width, height int
}

func NewForgetView(n wifi.Network) *ForgetView {
	return &ForgetView{network: n}
}

func (v *ForgetView) Init() tea.Cmd { return nil }

func (v *ForgetView) Resize(width, height int) {
	v.width = width
	v.height = height
}

func (v *ForgetView) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "enter", "f":
			ssid := v.network.SSID
			return v, tea.Batch(popView, func() tea.Msg {
				return forgetMsg{ssid: ssid}
			})
		case "n", "q", "esc":
			return v, popView
		}
	}
	return v, nil
}

func (v *ForgetView) View() string {
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).
		Render(fmt.Sprintf("Forget network '%s'? (Y/n)", v.network.SSID))
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		BorderForeground(CurrentTheme.Primary).
		Render(question)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}
