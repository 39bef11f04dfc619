package game

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/scoring"
	"github.com/abhisek/imodel/internal/selection"
	"github.com/abhisek/imodel/internal/ui/components"
	"github.com/abhisek/imodel/internal/ui/theme"
)

const (
	margin    = 2
	gutter    = 2
	topRows   = 2
	minLeftW  = 30
	maxLeftW  = 60
	minFieldH = 5
)

// Layer IDs used for hit testing.
const (
	fieldID       = "field"
	zoneID        = "zone"
	buttonID      = "button"
	tokenPrefix   = "token:"
	palettePrefix = "palette:"
)

func tokenID(m modes.Name) string   { return tokenPrefix + string(m) }
func paletteID(m modes.Name) string { return palettePrefix + string(m) }

// scene is one composed frame of the screen in screen cells.
type scene struct {
	*lipgloss.Canvas
	proj projection
}

func (sc scene) String() string {
	return strings.ReplaceAll(sc.Render(), "\r\n", "\n")
}

// hitMode returns the mode whose layer, named with prefix, is topmost at (x, y).
func (sc scene) hitMode(x, y int, prefix string) (modes.Name, bool) {
	id, ok := strings.CutPrefix(sc.Hit(x, y), prefix)
	if !ok || id == "" {
		return "", false
	}
	return modes.Name(id), true
}

func (sc scene) within(id string, x, y int) bool {
	l := sc.Get(id)
	return l != nil && l.InBounds(x, y)
}

// fieldPoint converts a screen cell inside the field to field coordinates.
func (sc scene) fieldPoint(x, y int) selection.Point {
	f := sc.Get(fieldID)
	if f == nil {
		return selection.Point{}
	}
	return sc.proj.point(x-f.GetX(), y-f.GetY())
}

func (s *GameScreen) View(width, height int) string {
	s.width, s.height = width, height
	return s.compose(width, height).String()
}

func (s *GameScreen) scene() scene {
	return s.compose(s.width, s.height)
}

func scenarioCounter(i, n int) string {
	return fmt.Sprintf("%d of %d", i+1, n)
}

func columns(width int) (leftW, rightW, rightX int) {
	avail := width - 2*margin - gutter
	leftW = clampInt(avail*45/100, minLeftW, maxLeftW)
	rightW = max(avail-leftW, 10)
	rightX = margin + leftW + gutter
	return leftW, rightW, rightX
}

// compose lays the screen out as a canvas of layers.
func (s *GameScreen) compose(width, height int) scene {
	var sc scene
	leftW, rightW, rightX := columns(width)
	c := lipgloss.NewCanvas()
	place := func(content string, x, y int) *lipgloss.Layer {
		l := lipgloss.NewLayer(content).X(x).Y(y)
		c.AddLayers(l)
		return l
	}

	place(components.ProgressDots{
		Total:   s.sess.Len(),
		Current: s.sess.Index(),
		Done:    len(s.sess.Results()),
	}.View(), margin, 0)
	place(lipgloss.JoinVertical(lipgloss.Left, s.renderCard(leftW), s.renderFeedback(leftW)), margin, topRows)

	btn := s.renderButton()
	btnH := lipgloss.Height(btn)

	y := topRows
	if _, ok := s.continuous(); ok {
		place(theme.Hint.Render("Drag a mode into the center ring"), rightX, y)
		y++

		fieldH := max(height-y-2-1-btnH, minFieldH)
		sc.proj = projection{geo: s.frameGeometry(), w: rightW - 2, h: fieldH}
		border := theme.Zone.Padding(0).Width(rightW)
		if s.frame.Active() {
			border = border.BorderForeground(theme.Primary)
		}
		place(border.Render(lipgloss.NewStyle().Width(sc.proj.w).Height(fieldH).Render("")), rightX, y)
		c.AddLayers(fieldLayers(s.frame, s.universe(), sc.proj, s.focused(), image.Pt(rightX+1, y+1))...)
		y += fieldH + 2

		hintText := " "
		if !s.sess.Selection().Empty() && !s.sess.HasChecked() {
			hintText = "Drag out to remove"
		}
		place(theme.Hint.Render(hintText), rightX, y)
		y++
	} else {
		place(theme.Label.Render("I-Modes"), rightX, y)
		y++

		rows := s.paletteRows()
		for i, m := range s.universe() {
			place(rows[i], rightX, y+i).ID(paletteID(m))
		}
		y += len(rows) + 1

		zone := s.renderZone(rightW)
		place(zone, rightX, y).ID(zoneID)
		y += lipgloss.Height(zone)

		hintText := " "
		if !s.sess.Selection().Empty() && !s.sess.HasChecked() {
			hintText = "Drop a mode again to remove it"
		}
		place(theme.Hint.Render(hintText), rightX, y)
		y++
	}
	place(btn, rightX, y).ID(buttonID)

	sc.Canvas = c
	return sc
}

func (s *GameScreen) frameGeometry() selection.Geometry {
	if c, ok := s.continuous(); ok {
		return c.Geometry()
	}
	return selection.DefaultGeometry()
}

func (s *GameScreen) renderCard(width int) string {
	sc := s.sess.Current()
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sc.Title)
	vignette := theme.Body.Render(sc.Vignette)
	return theme.Card.Width(width).Render(title + "\n\n" + vignette)
}

func (s *GameScreen) renderFeedback(width int) string {
	r, ok := s.sess.LastResult()
	if !ok {
		return ""
	}
	u := s.universe()

	headline := verdictStyle(r.Verdict).Render(FeedbackMessage(r))
	lines := []string{headline}
	if !r.Correct.Empty() {
		lines = append(lines, "", theme.Label.Render("Missing I-Modes:"), components.ModeBadges(u, r.Correct.Ordered(u)))
	}
	lines = append(lines, "", theme.Label.Render("You selected:"), components.ModeBadges(u, r.Selected.Ordered(u)))
	if s.sess.Current().Explanation != "" {
		lines = append(lines, "", theme.Body.Render(s.sess.Current().Explanation))
	}

	return theme.Card.
		Width(width).
		BorderForeground(verdictColor(r.Verdict)).
		Render(strings.Join(lines, "\n"))
}

// paletteRows renders one row per mode in universe order.
func (s *GameScreen) paletteRows() []string {
	u := s.universe()
	sel := s.sess.Selection()
	held := modes.Name("")
	if d, ok := s.discrete(); ok {
		held, _ = d.Holding()
	}

	rows := make([]string, len(u))
	for i, m := range u {
		state := components.BadgeIdle
		switch {
		case m == held:
			state = components.BadgeHeld
		case sel.Has(m):
			state = components.BadgeSelected
		case i == s.focus:
			state = components.BadgeFocused
		}
		marker := " "
		if i == s.focus {
			marker = "▸"
		}
		rows[i] = fmt.Sprintf("%s %d ", marker, i+1) + components.ModeBadge(m, i, state)
	}
	return rows
}

func (s *GameScreen) renderZone(width int) string {
	u := s.universe()
	style := theme.Zone.Width(width)
	if d, ok := s.discrete(); ok && d.Hovering() {
		style = theme.ZoneActive.Width(width)
	}

	content := theme.Hint.Render("Drag I-Modes here to diagnose")
	if sel := s.sess.Selection(); !sel.Empty() {
		content = components.ModeBadges(u, sel.Ordered(u))
	}
	return style.Render(theme.Label.Render("What's Missing?") + "\n" + content)
}

func (s *GameScreen) renderButton() string {
	if s.sess.HasChecked() {
		return components.Button{Label: nextLabel(s.sess), Active: true}.View()
	}
	empty := s.sess.Selection().Empty()
	return components.Button{Label: "Check Answer", Active: !empty, Disabled: empty}.View()
}

func verdictColor(v scoring.Verdict) color.Color {
	switch v {
	case scoring.Exact:
		return theme.Success
	case scoring.Partial:
		return theme.Warning
	}
	return theme.Error
}

func verdictStyle(v scoring.Verdict) lipgloss.Style {
	switch v {
	case scoring.Exact:
		return theme.Correct
	case scoring.Partial:
		return theme.Partial
	}
	return theme.Incorrect
}
