package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/wifi"
)

// PasswordView prompts for the passphrase of a secured network and starts
// the connection attempt.
type PasswordView struct {
	network       wifi.Network
	input         textinput.Model
	width, height int
}

func NewPasswordView(n wifi.Network) *PasswordView {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30
	ti.EchoMode = textinput.EchoPassword
	ti.Focus()
	return &PasswordView{network: n, input: ti}
}

func (v *PasswordView) Init() tea.Cmd { return textinput.Blink }

func (v *PasswordView) Resize(width, height int) {
	v.width = width
	v.height = height
}

func (v *PasswordView) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return v, popView
		case "enter":
			password := v.input.Value()
			if password == "" {
				return v, nil
			}
			network := v.network
			return v, tea.Batch(popView, func() tea.Msg {
				return connectCredentialMsg{
					ssid:     network.SSID,
					security: network.Security,
					cipher:   network.Cipher,
					password: wifi.NewSecret(password),
				}
			})
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *PasswordView) View() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Enter password for '%s' (%s)\n\n", v.network.SSID, v.network.Security))
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle().Render("(enter to connect, esc to cancel)"))

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		BorderForeground(CurrentTheme.Primary).
		Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}
