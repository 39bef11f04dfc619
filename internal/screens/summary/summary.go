package summary

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/router"
	"github.com/abhisek/imodel/internal/screen"
	"github.com/abhisek/imodel/internal/session"
	"github.com/abhisek/imodel/internal/ui/components"
	"github.com/abhisek/imodel/internal/ui/layout"
	"github.com/abhisek/imodel/internal/ui/theme"
)

const reflection = "As you return to your own work with AI, remember: the I-Model isn't a " +
	"checklist to complete. It's a set of questions to keep asking. Which I-Mode do " +
	"you think you'll need to pay most attention to?"

// Config holds summary screen settings.
type Config struct {
	Universe  modes.Universe
	SessionID string

	// Copy writes the report to the system clipboard.
	Copy func(string) error
}

var (
	restartKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Restart"))
	copyKey    = key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "Copy"))
)

type copiedMsg struct {
	err error
}

// SummaryScreen displays the completion statistics.
type SummaryScreen struct {
	summary *session.Summary
	results []session.Result
	cfg     Config
	restart func() screen.Screen
	menu    components.Menu
	status  string
	left    bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. restart builds the screen shown after
// "Return to Start".
func New(summary *session.Summary, results []session.Result, cfg Config, restart func() screen.Screen) *SummaryScreen {
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	if len(cfg.Universe) == 0 {
		cfg.Universe = modes.Default()
	}
	s := &SummaryScreen{
		summary: summary,
		results: results,
		cfg:     cfg,
		restart: restart,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Return to Start", Action: s.returnToStart},
		{Label: "Copy Results", Action: s.copy},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Practice Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: restartKey.Help().Key, Description: restartKey.Help().Desc},
		{Key: copyKey.Help().Key, Description: copyKey.Help().Desc},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			s.status = "Clipboard unavailable: " + msg.err.Error()
		} else {
			s.status = "Results copied to clipboard"
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, restartKey):
			return s, s.returnToStart()
		case key.Matches(msg, copyKey):
			return s, s.copy()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) returnToStart() tea.Cmd {
	if s.left || s.restart == nil {
		return nil
	}
	s.left = true
	next := s.restart()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SummaryScreen) copy() tea.Cmd {
	report := Report(s.summary, s.results, s.cfg.Universe, s.cfg.SessionID)
	write := s.cfg.Copy
	return func() tea.Msg {
		return copiedMsg{err: write(report)}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	cardW := min(width-8, 64)

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("%d", sum.CorrectCount))))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle.Render(
		fmt.Sprintf("of %d scenarios correct", sum.Total))))
	b.WriteString("\n")
	b.WriteString(center(components.ScoreBar{Percent: sum.Accuracy(), Width: min(cardW, 40)}.View()))
	b.WriteString("\n")
	if sum.PartialCount > 0 {
		b.WriteString(center(theme.Hint.Render(
			fmt.Sprintf("%d partially correct", sum.PartialCount))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var frequent []string
	frequent = append(frequent, theme.Label.Render("Most Frequently Missing"))
	if len(sum.TopMissing) == 0 {
		frequent = append(frequent, theme.Hint.Render("Every scenario had all I-Modes present."))
	}
	for _, mc := range sum.TopMissing {
		frequent = append(frequent, components.ModeBadge(mc.Mode, s.cfg.Universe.Index(mc.Mode), components.BadgeIdle)+
			theme.Hint.Render(fmt.Sprintf("  appeared in %d scenario%s", mc.Count, plural(mc.Count))))
	}
	b.WriteString(center(theme.Card.Width(cardW).Render(strings.Join(frequent, "\n"))))
	b.WriteString("\n")

	if mm := sum.MostMissed; mm != nil {
		challenge := theme.Label.Render("Your Biggest Challenge") + "\n" +
			theme.Body.Render("You struggled most with recognizing ") +
			components.ModeBadge(mm.Mode, s.cfg.Universe.Index(mm.Mode), components.BadgeSelected) +
			theme.Body.Render(fmt.Sprintf(" (missed in %d scenario%s)", mm.Count, plural(mm.Count)))
		b.WriteString(center(theme.Card.Width(cardW).Render(challenge)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Reflection")))
	b.WriteString("\n")
	b.WriteString(center(theme.Body.Width(cardW).Render(reflection)))
	b.WriteString("\n\n")
	b.WriteString(center(s.menu.View()))

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint.Render(s.status)))
	}

	return b.String()
}

// Report renders the results as plain text for export.
func Report(sum *session.Summary, results []session.Result, u modes.Universe, sessionID string) string {
	var b strings.Builder
	b.WriteString("I-Model Diagnosis Lab results\n")
	if sessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", sessionID)
	}
	fmt.Fprintf(&b, "Score: %d of %d scenarios correct", sum.CorrectCount, sum.Total)
	if sum.PartialCount > 0 {
		fmt.Fprintf(&b, " (%d partially correct)", sum.PartialCount)
	}
	b.WriteString("\n")

	if len(sum.TopMissing) > 0 {
		b.WriteString("\nMost Frequently Missing:\n")
		for _, mc := range sum.TopMissing {
			fmt.Fprintf(&b, "  %s: appeared in %d scenario%s\n", mc.Mode, mc.Count, plural(mc.Count))
		}
	}
	if mm := sum.MostMissed; mm != nil {
		fmt.Fprintf(&b, "\nYour Biggest Challenge: %s (missed in %d scenario%s)\n", mm.Mode, mm.Count, plural(mm.Count))
	}

	if len(results) > 0 {
		b.WriteString("\nScenarios:\n")
		for _, r := range results {
			fmt.Fprintf(&b, "  %-12s %-9s selected: %s; missing: %s\n",
				r.ScenarioID, r.Verdict,
				joinOrNone(r.Selected.Strings(u)),
				joinOrNone(r.Correct.Strings(u)))
		}
	}
	return b.String()
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
