package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/ui/theme"
)

// BadgeState changes how a mode badge is drawn.
type BadgeState int

const (
	BadgeIdle BadgeState = iota
	BadgeFocused
	BadgeHeld
	BadgeSelected
)

// ModeBadge renders a mode name as a coloured pill. i is the mode's index
// in its universe.
func ModeBadge(mode modes.Name, i int, state BadgeState) string {
	c := theme.ModeColor(mode, i)
	style := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	switch state {
	case BadgeFocused:
		style = style.Foreground(c).Underline(true)
	case BadgeHeld:
		style = style.Background(c).Foreground(theme.BgDark).Blink(true)
		return style.Render("✥ " + string(mode))
	case BadgeSelected:
		style = style.Background(c).Foreground(theme.BgDark)
	default:
		style = style.Foreground(c)
	}
	return style.Render(string(mode))
}

// ModeBadges renders names in a row using their universe colours.
func ModeBadges(u modes.Universe, names []modes.Name) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, ModeBadge(n, u.Index(n), BadgeSelected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
