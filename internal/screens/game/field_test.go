package game

import (
	"image"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/selection"
)

func testProjection() projection {
	return projection{geo: selection.DefaultGeometry(), w: 60, h: 20}
}

func TestProjection_RoundTrip(t *testing.T) {
	p := testProjection()
	x, y := p.cell(p.geo.Center)
	pt := p.point(x, y)
	assert.InDelta(t, p.geo.Center.X, pt.X, p.geo.Width/float64(p.w))
	assert.InDelta(t, p.geo.Center.Y, pt.Y, p.geo.Height/float64(p.h))
}

func TestProjection_ClampsOutside(t *testing.T) {
	p := testProjection()
	x, y := p.cell(selection.Point{X: -50, Y: 5000})
	assert.Equal(t, 0, x)
	assert.Equal(t, p.h-1, y)
}

func TestTokenLabel_ShortensWhenNarrow(t *testing.T) {
	assert.Equal(t, "Intentionality", tokenLabel(modes.Intentionality, 60))
	assert.Equal(t, "Int", tokenLabel(modes.Intentionality, 20))
}

func TestFieldLayers_HitFindsTokenOverField(t *testing.T) {
	p := testProjection()
	origin := image.Pt(10, 4)
	f := selection.Frame{Tokens: []selection.Token{
		{Mode: modes.Inquiry, Position: p.geo.Center, Rest: p.geo.Center},
	}}
	c := lipgloss.NewCanvas(fieldLayers(f, modes.Default(), p, "", origin)...)

	// The token sits on the center mark.
	cx, cy := p.cell(p.geo.Center)
	assert.Equal(t, tokenID(modes.Inquiry), c.Hit(origin.X+cx, origin.Y+cy))

	assert.Equal(t, fieldID, c.Hit(origin.X, origin.Y))
	assert.Equal(t, "", c.Hit(origin.X-1, origin.Y))

	backdrop := c.Get(fieldID)
	require.NotNil(t, backdrop)
	assert.Equal(t, origin.X, backdrop.GetX())
	assert.Equal(t, origin.Y, backdrop.GetY())
	assert.Equal(t, p.w, backdrop.GetWidth())
	assert.Equal(t, p.h, backdrop.GetHeight())
}

func TestFieldLayers_DraggedTokenOnTop(t *testing.T) {
	p := testProjection()
	pos := selection.Point{X: 300, Y: 200}
	f := selection.Frame{
		Dragging: modes.Integrity,
		Tokens: []selection.Token{
			{Mode: modes.Integrity, Position: pos, Dragging: true},
			{Mode: modes.Intuition, Position: pos, Locked: true},
			{Mode: modes.Inquiry, Position: pos},
		},
	}
	c := lipgloss.NewCanvas(fieldLayers(f, modes.Default(), p, "", image.Point{})...)

	x, y := p.cell(pos)
	assert.Equal(t, tokenID(modes.Integrity), c.Hit(x, y))

	f.Tokens[0].Dragging = false
	f.Dragging = ""
	c = lipgloss.NewCanvas(fieldLayers(f, modes.Default(), p, "", image.Point{})...)
	assert.Equal(t, tokenID(modes.Intuition), c.Hit(x, y))
}

func TestFieldLayers_RendersRingAndLabels(t *testing.T) {
	p := testProjection()
	f := selection.Frame{Tokens: []selection.Token{
		{Mode: modes.Inquiry, Position: selection.Point{X: 640, Y: 100}},
	}}
	sc := scene{Canvas: lipgloss.NewCanvas(fieldLayers(f, modes.Default(), p, "", image.Point{})...), proj: p}
	out := sc.String()

	assert.Contains(t, out, "Inquiry")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "·")
	assert.NotContains(t, out, "\r")
	assert.Len(t, strings.Split(out, "\n"), p.h)
}
