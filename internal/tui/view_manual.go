package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/wifi"
)

// securityChoices are the options offered when adding a network by hand, in
// display order.
var securityChoices = []struct {
	label    string
	security wifi.Security
}{
	{"WPA2", wifi.SecurityWPA2Personal},
	{"WPA3", wifi.SecurityWPA3Personal},
	{"WPA", wifi.SecurityWPAPersonal},
	{"WEP", wifi.SecurityWEP},
	{"Open", wifi.SecurityOpen},
}

// ManualAddView is the form for joining a network that is not in the list,
// typically one that does not broadcast its SSID.
type ManualAddView struct {
	ssid     *TextField
	password *TextField
	security *ChoiceGroup
	hidden   *Checkbox
	buttons  *ButtonGroup
	focus    *FocusManager

	width, height int
}

func NewManualAddView() *ManualAddView {
	v := &ManualAddView{}

	v.ssid = NewTextField("SSID:      ", 32)
	v.password = NewTextField("Passphrase:", 64)
	v.password.Model.EchoMode = textinput.EchoPassword
	v.password.OnFocus = func(ti *textinput.Model) tea.Cmd {
		ti.EchoMode = textinput.EchoNormal
		return nil
	}
	v.password.OnBlur = func(ti *textinput.Model) {
		ti.EchoMode = textinput.EchoPassword
	}

	labels := make([]string, len(securityChoices))
	for i, c := range securityChoices {
		labels[i] = c.label
	}
	v.security = NewChoiceGroup("Security:  ", labels)
	v.hidden = NewCheckbox("Hidden network", true)

	v.buttons = NewButtonGroup([]string{"Join", "Cancel"}, func(index int) tea.Cmd {
		if index != 0 {
			return popView
		}
		return v.joinCmd()
	})

	v.focus = NewFocusManager(v.ssid, v.password, v.security, v.hidden, v.buttons)
	return v
}

func (v *ManualAddView) joinCmd() tea.Cmd {
	ssid := strings.TrimSpace(v.ssid.Value())
	if ssid == "" {
		return nil
	}
	security := securityChoices[v.security.Selected()].security
	hidden := v.hidden.Checked()
	password := v.password.Value()

	if security.IsOpen() || password == "" {
		return tea.Batch(popView, func() tea.Msg {
			return connectOpenMsg{ssid: ssid, hidden: hidden}
		})
	}
	return tea.Batch(popView, func() tea.Msg {
		return connectCredentialMsg{
			ssid:     ssid,
			security: security,
			password: wifi.NewSecret(password),
			hidden:   hidden,
		}
	})
}

func (v *ManualAddView) Init() tea.Cmd { return textinput.Blink }

func (v *ManualAddView) Resize(width, height int) {
	v.width = width
	v.height = height
}

func (v *ManualAddView) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return v, popView
		case "tab", "down":
			return v, v.focus.Next()
		case "shift+tab", "up":
			return v, v.focus.Prev()
		case "enter":
			// Enter inside a text field advances instead of submitting.
			if v.focus.Focused() == Focusable(v.ssid) || v.focus.Focused() == Focusable(v.password) {
				return v, v.focus.Next()
			}
		}
	}
	return v, v.focus.Update(msg)
}

func (v *ManualAddView) View() string {
	var b strings.Builder
	b.WriteString(focusedStyle().Render("Add Network"))
	b.WriteString("\n\n")
	for _, item := range v.focus.Items() {
		b.WriteString(item.View())
		b.WriteString("\n\n")
	}
	b.WriteString(blurredStyle().Render("(tab to switch fields, arrows to choose, enter to select)"))

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		BorderForeground(CurrentTheme.Primary).
		Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}
