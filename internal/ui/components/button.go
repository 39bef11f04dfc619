package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/ui/theme"
)

// Button is a styled, render-only button. Key handling belongs to the
// screen that owns it.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// View renders the button. A disabled button is drawn dimmed.
func (b Button) View() string {
	label := " " + b.Label + " "
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.Border).Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸" + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow joins buttons with a gap.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
}
