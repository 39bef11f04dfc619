package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/ui/theme"
)

// Frame geometry, in terminal cells.
const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3
)

const brand = "I-Model"

var (
	bar = lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) String() string {
	return keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains for a screen once header and footer are drawn.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage centres a resize request in the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := titleStyle.Align(lipgloss.Center).Render(fmt.Sprintf(
		"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height,
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// RenderHeader draws the top bar: the brand on the left, title centred and
// status, usually the scenario counter, on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	left := brandStyle.Render(brand)
	center := titleStyle.Render(title)
	right := statusStyle.Render(status)

	cw := lipgloss.Width(center)
	lw := max((inner-cw)/2, lipgloss.Width(left)+1)
	rw := max(inner-lw-cw, lipgloss.Width(right))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(lw).Render(left),
		center,
		lipgloss.NewStyle().Width(rw).Align(lipgloss.Right).Render(right),
	)
	return bar.Width(width).Render(row)
}

// RenderFooter draws the key hints bar.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.String()
	}
	return bar.Width(width).Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer. Content is padded or cut
// to fill exactly the rows between the bars.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(rows).
		MaxHeight(rows).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
