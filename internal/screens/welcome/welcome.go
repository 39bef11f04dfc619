package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/router"
	"github.com/abhisek/imodel/internal/screen"
	"github.com/abhisek/imodel/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	openDur      = 1500 * time.Millisecond

	title    = "I-Model Diagnosis Lab"
	subtitle = "Enter the I-Model"
)

const orbArt = `╭──────╮
│ OPEN │
╰──────╯`

type tickMsg time.Time

// WelcomeScreen shows two closed doors. Any key or click opens them; once
// fully open the screen hands over to the screen produced by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	opening      bool
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !w.opening {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= openDur {
			w.elapsed = openDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		if msg.String() == "enter" && w.opening {
			// A second enter skips the rest of the animation.
			return w, w.transition()
		}
		return w, w.open()

	case tea.MouseClickMsg:
		return w, w.open()
	}

	return w, nil
}

func (w *WelcomeScreen) open() tea.Cmd {
	if w.opening {
		return nil
	}
	w.opening = true
	return tick()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// progress returns how far the doors have opened, in [0, 1].
func (w *WelcomeScreen) progress() float64 {
	return float64(w.elapsed) / float64(openDur)
}

func (w *WelcomeScreen) View(width, height int) string {
	text := w.renderText()
	textW := lipgloss.Width(text)
	if textW > width {
		textW = width
	}

	gap := textW + 2 + int(float64(width-textW-2)*w.progress())
	if gap > width {
		gap = width
	}
	doorW := (width - gap) / 2

	door := lipgloss.NewStyle().Foreground(theme.Primary)
	seam := lipgloss.NewStyle().Foreground(theme.Accent)

	center := lipgloss.Place(gap, height, lipgloss.Center, lipgloss.Center, text)
	centerLines := strings.Split(center, "\n")

	lines := make([]string, height)
	for i := range lines {
		left, right := "", ""
		if doorW > 0 {
			left = door.Render(strings.Repeat("▓", doorW-1)) + seam.Render("▌")
			right = seam.Render("▐") + door.Render(strings.Repeat("▓", doorW-1))
		}
		mid := ""
		if i < len(centerLines) {
			mid = centerLines[i]
		}
		lines[i] = left + mid + right
	}
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) renderText() string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(subtitle),
		"",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(orbArt),
	}
	if !w.opening {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to open"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}
