package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Focusable is a form element managed by a FocusManager.
type Focusable interface {
	// Focus is called when the element gains focus. It can return a command.
	Focus() tea.Cmd
	// Blur is called when the element loses focus.
	Blur()
	// Update is called when the element is focused and a message is received.
	Update(msg tea.Msg) (Focusable, tea.Cmd)
	// View renders the element's UI.
	View() string
}

// FocusManager cycles focus through a flat list of form elements.
type FocusManager struct {
	items []Focusable
	focus int
}

func NewFocusManager(items ...Focusable) *FocusManager {
	m := &FocusManager{items: items}
	if len(items) > 0 {
		items[0].Focus()
	}
	return m
}

// Update passes the message to the currently focused element.
func (m *FocusManager) Update(msg tea.Msg) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	newItem, cmd := m.items[m.focus].Update(msg)
	m.items[m.focus] = newItem
	return cmd
}

func (m *FocusManager) Next() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	m.items[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.items)
	return m.items[m.focus].Focus()
}

func (m *FocusManager) Prev() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	m.items[m.focus].Blur()
	m.focus--
	if m.focus < 0 {
		m.focus = len(m.items) - 1
	}
	return m.items[m.focus].Focus()
}

// Focused returns the currently focused element.
func (m *FocusManager) Focused() Focusable {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.focus]
}

// SetFocus moves focus directly to the given element, if present.
func (m *FocusManager) SetFocus(target Focusable) tea.Cmd {
	for i, item := range m.items {
		if item == target {
			m.items[m.focus].Blur()
			m.focus = i
			return item.Focus()
		}
	}
	return nil
}

// Items returns the managed elements in order, for rendering.
func (m *FocusManager) Items() []Focusable {
	return m.items
}
