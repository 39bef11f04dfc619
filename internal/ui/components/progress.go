package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/ui/theme"
)

// ProgressDots shows one dot per scenario: completed, active or pending.
type ProgressDots struct {
	Total   int
	Current int
	Done    int
}

// View renders the dots followed by "Scenario i of n".
func (p ProgressDots) View() string {
	var b strings.Builder
	for i := 0; i < p.Total; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i < p.Done && i != p.Current:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("●"))
		case i == p.Current:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("◉"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
		}
	}
	label := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Scenario %d of %d", p.Current+1, p.Total))
	return b.String() + "   " + label
}

// ScoreBar displays a horizontal bar filled to Percent.
type ScoreBar struct {
	Percent float64
	Width   int
	Fill    color.Color
}

// View renders the bar.
func (s ScoreBar) View() string {
	barWidth := s.Width
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * s.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := s.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}
