package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one horizontal action, such as "Copy results".
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a row of actions navigated with left/right or tab.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		m.Selected = m.step(-1)
	case "right", "l", "tab":
		m.Selected = m.step(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// step returns the next enabled index in direction dir, wrapping around.
func (m Menu) step(dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((m.Selected+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu as a row of buttons.
func (m Menu) View() string {
	buttons := make([]Button, 0, len(m.Items))
	for i, item := range m.Items {
		buttons = append(buttons, Button{Label: item.Label, Active: i == m.Selected, Disabled: item.Disabled})
	}
	return ButtonRow(buttons...)
}
