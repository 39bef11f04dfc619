package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/modes"
)

// Color palette, calm slate with one accent per mode
var (
	Primary   = lipgloss.Color("#818CF8") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F59E0B") // Orange
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Mode colours
var (
	Intentionality = lipgloss.Color("#06B6D4") // Cyan
	Integrity      = lipgloss.Color("#10B981") // Emerald
	Inquiry        = lipgloss.Color("#F59E0B") // Amber
	Intuition      = lipgloss.Color("#F43F5E") // Rose
)

// extraModeColors is cycled for catalogs that declare their own modes.
var extraModeColors = []color.Color{
	lipgloss.Color("#A78BFA"),
	lipgloss.Color("#F472B6"),
	lipgloss.Color("#60A5FA"),
	lipgloss.Color("#A3E635"),
}

// ModeColor returns the colour for mode at position i of its universe.
func ModeColor(mode modes.Name, i int) color.Color {
	switch mode {
	case modes.Intentionality:
		return Intentionality
	case modes.Integrity:
		return Integrity
	case modes.Inquiry:
		return Inquiry
	case modes.Intuition:
		return Intuition
	}
	if i < 0 {
		i = 0
	}
	return extraModeColors[i%len(extraModeColors)]
}

// Typography
var (
	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Zone = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ZoneActive = Zone.
			BorderForeground(Accent)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Partial = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
