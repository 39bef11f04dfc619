package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/router"
	"github.com/abhisek/imodel/internal/screens/game"
	"github.com/abhisek/imodel/internal/screens/summary"
	"github.com/abhisek/imodel/internal/screens/welcome"
	"github.com/abhisek/imodel/internal/selection"
)

func newTestApp(t *testing.T, opts Options) AppModel {
	t.Helper()
	m, err := newAppModel(opts)
	require.NoError(t, err)
	t.Cleanup(m.close)
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 46})
	return m
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am
}

// apply runs msg and feeds any navigation message back into the model.
func apply(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.ReplaceScreenMsg:
		m = update(t, m, out)
	}
	return m
}

func TestNewAppModel_StartsOnWelcome(t *testing.T) {
	m := newTestApp(t, Options{})
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
	assert.Equal(t, 6, m.sess.Len())
	assert.Equal(t, selection.KindDiscrete, m.sess.Engine().Kind())
}

func TestNewAppModel_RejectsUnknownStrategy(t *testing.T) {
	_, err := newAppModel(Options{Strategy: "radial"})
	assert.Error(t, err)
}

func TestNewAppModel_RejectsBadGeometry(t *testing.T) {
	geo := selection.DefaultGeometry()
	geo.LockRadius = -1
	_, err := newAppModel(Options{Strategy: selection.KindContinuous, Geometry: geo})
	assert.Error(t, err)
}

func TestApp_FullLoop(t *testing.T) {
	var copied string
	m := newTestApp(t, Options{
		Context: context.Background(),
		Copy: func(s string) error {
			copied = s
			return nil
		},
	})

	// Welcome: the first key opens the doors, enter skips the animation.
	m = apply(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	_, ok := m.router.Active().(*game.GameScreen)
	require.True(t, ok, "expected game screen")

	firstID := m.sess.ID()
	for i := 0; i < m.sess.Len(); i++ {
		m = apply(t, m, tea.KeyPressMsg{Code: '3', Text: "3"})
		m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
		require.True(t, m.sess.HasChecked(), "scenario %d not checked", i)
		m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	require.True(t, m.sess.Complete())
	_, ok = m.router.Active().(*summary.SummaryScreen)
	require.True(t, ok, "expected summary screen")

	next, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	m = next.(AppModel)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Contains(t, copied, firstID)

	m = apply(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})
	_, ok = m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok, "expected welcome screen after restart")
	assert.False(t, m.sess.Complete())
	assert.Empty(t, m.sess.Results())
	assert.NotEqual(t, firstID, m.sess.ID())
}

func TestApp_HeaderShowsScenarioCounter(t *testing.T) {
	m := newTestApp(t, Options{})
	m = apply(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	content := m.render()
	assert.Contains(t, content, "I-Model")
	assert.Contains(t, content, "1 of 6")
}

func TestApp_View(t *testing.T) {
	m := newTestApp(t, Options{})
	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)
	assert.True(t, v.ReportFocus)
	assert.Contains(t, m.render(), "Ctrl+C")
}

func TestApp_TooSmall(t *testing.T) {
	m := newTestApp(t, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(m.render(), "Terminal too small"))
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestApp(t, Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestContentMouse(t *testing.T) {
	got := contentMouse(tea.Mouse{X: 5, Y: 10, Button: tea.MouseLeft})
	assert.Equal(t, tea.Mouse{X: 5, Y: 7, Button: tea.MouseLeft}, got)
}

func TestApp_ContinuousStrategy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newTestApp(t, Options{Strategy: selection.KindContinuous, FPS: 120, Context: ctx})
	assert.Equal(t, selection.KindContinuous, m.sess.Engine().Kind())

	require.NoError(t, m.sess.MutateSelection(modes.NewSet(modes.Inquiry)))
	assert.True(t, m.sess.Selection().Has(modes.Inquiry))
}

func TestApp_EscReachesGame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newTestApp(t, Options{Strategy: selection.KindContinuous, FPS: 120, Context: ctx})
	m = apply(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	_, ok := m.router.Active().(*game.GameScreen)
	require.True(t, ok, "expected game screen")

	c := m.sess.Engine().(*selection.Continuous)
	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeySpace})
	_, dragging := c.Dragging()
	require.True(t, dragging)

	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	_, dragging = c.Dragging()
	assert.False(t, dragging)
	_, ok = m.router.Active().(*game.GameScreen)
	assert.True(t, ok, "esc should not navigate away from the game")
}
