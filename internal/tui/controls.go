package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func focusedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
}

func blurredStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
}

// TextField wraps a textinput with a label for use in a focus group.
type TextField struct {
	Model textinput.Model
	label string

	// OnFocus and OnBlur allow fields to change echo mode when the cursor
	// enters or leaves, used to reveal passwords only while editing.
	OnFocus func(*textinput.Model) tea.Cmd
	OnBlur  func(*textinput.Model)
}

func NewTextField(label string, charLimit int) *TextField {
	ti := textinput.New()
	ti.CharLimit = charLimit
	ti.Width = 30
	return &TextField{Model: ti, label: label}
}

func (t *TextField) Focus() tea.Cmd {
	if t.OnFocus != nil {
		if cmd := t.OnFocus(&t.Model); cmd != nil {
			return tea.Batch(cmd, t.Model.Focus())
		}
	}
	return t.Model.Focus()
}

func (t *TextField) Blur() {
	if t.OnBlur != nil {
		t.OnBlur(&t.Model)
	}
	t.Model.Blur()
}

func (t *TextField) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t *TextField) View() string {
	label := t.label
	if t.Model.Focused() {
		label = focusedStyle().Render(label)
	} else {
		label = blurredStyle().Render(label)
	}
	return label + " " + t.Model.View()
}

func (t *TextField) Value() string { return t.Model.Value() }

// Checkbox is a labeled boolean toggled with enter or space.
type Checkbox struct {
	label   string
	checked bool
	focused bool
}

func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{label: label, checked: checked}
}

func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *Checkbox) Blur() { c.focused = false }

func (c *Checkbox) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			c.checked = !c.checked
		}
	}
	return c, nil
}

func (c *Checkbox) View() string {
	checkbox := "[ ]"
	if c.checked {
		checkbox = "[x]"
	}
	if c.focused {
		return focusedStyle().Render(checkbox + " " + c.label)
	}
	return blurredStyle().Render(checkbox + " " + c.label)
}

func (c *Checkbox) Checked() bool { return c.checked }

// ChoiceGroup is a horizontal single-choice selector.
type ChoiceGroup struct {
	label    string
	options  []string
	selected int
	focused  bool
}

func NewChoiceGroup(label string, options []string) *ChoiceGroup {
	return &ChoiceGroup{label: label, options: options}
}

func (r *ChoiceGroup) Focus() tea.Cmd {
	r.focused = true
	return nil
}

func (r *ChoiceGroup) Blur() { r.focused = false }

func (r *ChoiceGroup) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right":
			r.selected = (r.selected + 1) % len(r.options)
		case "left":
			r.selected = (r.selected - 1 + len(r.options)) % len(r.options)
		}
	}
	return r, nil
}

func (r *ChoiceGroup) View() string {
	var s strings.Builder
	if r.focused {
		s.WriteString(focusedStyle().Render(r.label))
	} else {
		s.WriteString(blurredStyle().Render(r.label))
	}
	s.WriteString(" ")
	for i, option := range r.options {
		marker := "( )"
		if i == r.selected {
			marker = "(•)"
		}
		style := blurredStyle()
		if r.focused && i == r.selected {
			style = focusedStyle()
		}
		s.WriteString(style.Render(marker + " " + option))
		s.WriteString("  ")
	}
	return s.String()
}

func (r *ChoiceGroup) Selected() int { return r.selected }

// ButtonGroup is a horizontal row of buttons. Enter triggers the action with
// the selected index.
type ButtonGroup struct {
	buttons  []string
	selected int
	focused  bool
	action   func(int) tea.Cmd
}

func NewButtonGroup(buttons []string, action func(int) tea.Cmd) *ButtonGroup {
	return &ButtonGroup{buttons: buttons, action: action}
}

func (b *ButtonGroup) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *ButtonGroup) Blur() { b.focused = false }

func (b *ButtonGroup) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right":
			b.selected = (b.selected + 1) % len(b.buttons)
		case "left":
			b.selected = (b.selected - 1 + len(b.buttons)) % len(b.buttons)
		case "enter":
			if b.action != nil {
				return b, b.action(b.selected)
			}
		}
	}
	return b, nil
}

func (b *ButtonGroup) View() string {
	var s strings.Builder
	for i, label := range b.buttons {
		style := blurredStyle()
		if b.focused && i == b.selected {
			style = focusedStyle()
		}
		s.WriteString(style.Render("[ " + label + " ]"))
		s.WriteString("  ")
	}
	return s.String()
}
