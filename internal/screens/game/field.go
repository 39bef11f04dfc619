package game

import (
	"image"
	"image/color"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/selection"
	"github.com/abhisek/imodel/internal/ui/theme"
)

// ringSteps is the number of samples used to draw the lock zone outline.
const ringSteps = 72

// Field layers stack in this order.
const (
	zField = iota + 1
	zSlot
	zRing
	zToken
	zLocked
	zDragging
)

// projection maps field coordinates onto a w×h cell grid.
type projection struct {
	geo  selection.Geometry
	w, h int
}

func (p projection) cell(pt selection.Point) (int, int) {
	x := int(math.Round(pt.X / p.geo.Width * float64(p.w-1)))
	y := int(math.Round(pt.Y / p.geo.Height * float64(p.h-1)))
	return clampInt(x, 0, p.w-1), clampInt(y, 0, p.h-1)
}

func (p projection) point(x, y int) selection.Point {
	fx, fy := 0.0, 0.0
	if p.w > 1 {
		fx = float64(x) / float64(p.w-1) * p.geo.Width
	}
	if p.h > 1 {
		fy = float64(y) / float64(p.h-1) * p.geo.Height
	}
	return selection.Point{X: fx, Y: fy}
}

// tokenLabel shortens long names when the field is narrow.
func tokenLabel(mode modes.Name, width int) string {
	s := string(mode)
	if len([]rune(s))+2 > width/2 {
		r := []rune(s)
		if len(r) > 3 {
			return string(r[:3])
		}
	}
	return s
}

// labelOrigin is the cell where a token label starts, relative to the field.
func labelOrigin(p projection, t selection.Token) image.Point {
	n := len([]rune(tokenLabel(t.Mode, p.w)))
	cx, cy := p.cell(t.Position)
	return image.Pt(clampInt(cx-n/2, 0, max(p.w-n, 0)), cy)
}

func tokenZ(t selection.Token) int {
	switch {
	case t.Dragging:
		return zDragging
	case t.Locked:
		return zLocked
	}
	return zToken
}

func tokenStyle(t selection.Token, c color.Color, focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(c).Bold(true)
	switch {
	case t.Dragging:
		return style.Reverse(true)
	case t.Locked:
		return lipgloss.NewStyle().Background(c).Foreground(theme.BgDark).Bold(true)
	case focused:
		return style.Underline(true)
	}
	return style
}

// fieldLayers draws the frame with its top-left cell at origin. Token labels
// carry tokenID(mode) and everything else carries fieldID, so Canvas.Hit
// resolves the topmost token under the pointer.
func fieldLayers(f selection.Frame, u modes.Universe, p projection, focus modes.Name, origin image.Point) []*lipgloss.Layer {
	at := func(content string, pt image.Point, z int) *lipgloss.Layer {
		return lipgloss.NewLayer(content).X(origin.X + pt.X).Y(origin.Y + pt.Y).Z(z).ID(fieldID)
	}
	g := p.geo

	// The backdrop has the lowest z, so Get(fieldID) returns it.
	backdrop := lipgloss.NewStyle().Width(p.w).Height(p.h).Render("")
	layers := []*lipgloss.Layer{at(backdrop, image.Point{}, zField)}

	ringColor := theme.Border
	if f.AnyLocked() {
		ringColor = theme.Accent
	}
	ring := lipgloss.NewStyle().Foreground(ringColor)
	seen := make(map[image.Point]bool, ringSteps)
	for k := 0; k < ringSteps; k++ {
		a := 2 * math.Pi * float64(k) / ringSteps
		x, y := p.cell(selection.Point{
			X: g.Center.X + g.LockRadius*math.Cos(a),
			Y: g.Center.Y + g.LockRadius*math.Sin(a),
		})
		pt := image.Pt(x, y)
		if seen[pt] {
			continue
		}
		seen[pt] = true
		layers = append(layers, at(ring.Render("·"), pt, zRing))
	}
	cx, cy := p.cell(g.Center)
	layers = append(layers, at(ring.Render("+"), image.Pt(cx, cy), zRing))

	slot := lipgloss.NewStyle().Foreground(theme.TextDim).Render("∘")
	for _, t := range f.Tokens {
		if t.Locked || t.Dragging {
			x, y := p.cell(t.Rest)
			layers = append(layers, at(slot, image.Pt(x, y), zSlot))
		}
	}

	for _, t := range f.Tokens {
		style := tokenStyle(t, theme.ModeColor(t.Mode, u.Index(t.Mode)), t.Mode == focus && !f.Active())
		label := style.Render(tokenLabel(t.Mode, p.w))
		layers = append(layers, at(label, labelOrigin(p, t), tokenZ(t)).ID(tokenID(t.Mode)))
	}
	return layers
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
