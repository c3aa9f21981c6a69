package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wifui/wifui/wifi"
)

// itemDelegate renders one network row: icon, SSID, signal colored on a
// low-to-high gradient, and connection markers.
type itemDelegate struct {
	list.DefaultDelegate
}

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(networkItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, listItem)
		return
	}

	title := Icons.ForNetwork(i.Network) + " " + i.SSID

	ssidColumnWidth := 32
	titleLen := len([]rune(title))
	if titleLen > ssidColumnWidth {
		title = string([]rune(title)[:ssidColumnWidth-1]) + "…"
		titleLen = ssidColumnWidth
	}
	padding := strings.Repeat(" ", ssidColumnWidth-titleLen)

	var titleStyle lipgloss.Style
	switch {
	case i.IsConnected:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Success).Bold(true)
	case i.IsSaved:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Success)
	default:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
	}
	title = titleStyle.Render(title)

	var desc string
	if i.Signal > 0 {
		low, _ := colorful.Hex(signalColor(CurrentTheme.SignalLow))
		high, _ := colorful.Hex(signalColor(CurrentTheme.SignalHigh))
		blend := low.BlendRgb(high, float64(i.Signal)/100.0)
		desc = lipgloss.NewStyle().Foreground(lipgloss.Color(blend.Hex())).Render(i.Description())
	} else {
		desc = lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("out of range")
	}
	if band := wifi.Band(i.FrequencyKHz); band != "" {
		desc += lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("  " + band)
	}
	if i.IsConnected {
		if i.LinkSpeedMbps > 0 {
			desc += fmt.Sprintf(" (Connected, %d Mbps)", i.LinkSpeedMbps)
		} else {
			desc += " (Connected)"
		}
	}

	line := title + padding + " " + desc
	var lineStyle lipgloss.Style
	if index == m.Index() {
		lineStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(CurrentTheme.Primary)
	} else {
		lineStyle = lipgloss.NewStyle().PaddingLeft(1)
	}
	fmt.Fprint(w, lineStyle.Render(line))
}

// signalColor resolves an adaptive color against the terminal background.
func signalColor(c lipgloss.TerminalColor) string {
	if adaptive, ok := c.(lipgloss.AdaptiveColor); ok {
		if lipgloss.HasDarkBackground() {
			return adaptive.Dark
		}
		return adaptive.Light
	}
	if plain, ok := c.(lipgloss.Color); ok {
		return string(plain)
	}
	return "#888888"
}

// ListView is the root view: the filterable network list.
type ListView struct {
	list          list.Model
	width, height int
}

func NewListView() *ListView {
	l := list.New([]list.Item{}, itemDelegate{}, 0, 0)
	l.Title = fmt.Sprintf("%-33s %s", "WiFi Network", "Signal")
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add network")),
			key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forget")),
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoconnect")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share QR")),
		}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys
	l.Styles.Title = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	l.Styles.FilterPrompt = lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
	l.Styles.FilterCursor = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	return &ListView{list: l}
}

// SetNetworks replaces the list contents, keeping the cursor on the same
// SSID when it survives the refresh.
func (v *ListView) SetNetworks(networks []wifi.Network) {
	var selectedSSID string
	if cur, ok := v.list.SelectedItem().(networkItem); ok {
		selectedSSID = cur.SSID
	}

	items := make([]list.Item, len(networks))
	for i, n := range networks {
		items[i] = networkItem{Network: n}
	}
	v.list.SetItems(items)

	if selectedSSID != "" {
		for i, it := range items {
			if it.(networkItem).SSID == selectedSSID {
				v.list.Select(i)
				break
			}
		}
	}
}

// Filtering reports whether the user is typing in or viewing a filter.
func (v *ListView) Filtering() bool {
	return v.list.FilterState() != list.Unfiltered
}

func (v *ListView) selected() (wifi.Network, bool) {
	item, ok := v.list.SelectedItem().(networkItem)
	if !ok {
		return wifi.Network{}, false
	}
	return item.Network, true
}

func (v *ListView) Init() tea.Cmd { return nil }

func (v *ListView) Resize(width, height int) {
	h, vmargin := lipgloss.NewStyle().Margin(1, 2).GetFrameSize()
	borderStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(CurrentTheme.Border)
	bh, bv := borderStyle.GetFrameSize()
	extraVerticalSpace := 4
	v.list.SetSize(width-h-bh, height-vmargin-bv-extraVerticalSpace)
	v.width = width
	v.height = height
}

func (v *ListView) Update(msg tea.Msg) (Component, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && v.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return v, tea.Quit

		case "esc":
			if v.list.FilterState() == list.Unfiltered {
				// With no filter to clear, escape abandons an in-flight
				// connection attempt.
				return v, func() tea.Msg { return abortConnectMsg{} }
			}

		case "r":
			return v, func() tea.Msg { return scanRequestMsg{} }

		case "n":
			return v, pushView(NewManualAddView())

		case "d":
			return v, func() tea.Msg { return disconnectMsg{} }

		case "f":
			if n, ok := v.selected(); ok && n.IsSaved {
				return v, pushView(NewForgetView(n))
			}

		case "a":
			if n, ok := v.selected(); ok && n.IsSaved {
				return v, func() tea.Msg {
					return setAutoConnectMsg{ssid: n.SSID, enabled: !n.AutoConnect}
				}
			}

		case "s":
			if n, ok := v.selected(); ok && n.IsSaved {
				return v, func() tea.Msg { return showPasswordMsg{network: n} }
			}

		case "enter", "c":
			if n, ok := v.selected(); ok {
				return v, v.connectCmd(n)
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// connectCmd picks the right action for the selected network: disconnect if
// already on it, reuse the saved profile, join directly when open, otherwise
// prompt for a password.
func (v *ListView) connectCmd(n wifi.Network) tea.Cmd {
	switch {
	case n.IsConnected:
		return func() tea.Msg { return disconnectMsg{} }
	case n.IsSaved:
		return func() tea.Msg { return connectSavedMsg{ssid: n.SSID} }
	case n.Security.IsOpen():
		return func() tea.Msg { return connectOpenMsg{ssid: n.SSID} }
	default:
		return pushView(NewPasswordView(n))
	}
}

func (v *ListView) View() string {
	var b strings.Builder
	borderStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(CurrentTheme.Border)
	b.WriteString(borderStyle.Render(v.list.View()))

	statusText := ""
	if len(v.list.Items()) > 0 {
		statusText = fmt.Sprintf("%d/%d", v.list.Index()+1, len(v.list.Items()))
	}
	b.WriteString("\n")
	b.WriteString(statusText)
	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}
