// Package game is the diagnosis screen: the scenario card, the feedback
// panel and the selection surface for either strategy. It translates
// terminal keyboard, mouse and focus input into selection events.
package game

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/router"
	"github.com/abhisek/imodel/internal/screen"
	"github.com/abhisek/imodel/internal/selection"
	"github.com/abhisek/imodel/internal/session"
	"github.com/abhisek/imodel/internal/ui/layout"
)

// moveStep is how far one arrow key moves a keyboard drag, in field units.
const moveStep = 25.0

// Config holds game screen settings.
type Config struct {
	// FPS is the animation rate of the continuous field.
	FPS int

	// Context bounds the lifetime of the animation ticker.
	Context context.Context

	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FPS:     30,
		Context: context.Background(),
		Logger:  slog.Default(),
	}
}

func (c Config) frameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultConfig().FPS
	}
	return time.Second / time.Duration(fps)
}

// GameScreen plays the session one scenario at a time.
type GameScreen struct {
	sess *session.Session
	cfg  Config
	log  *slog.Logger
	keys keyMap
	next func() screen.Screen

	width, height int

	// focus is the keyboard cursor over the universe.
	focus int

	// frame is the latest field state for the continuous strategy.
	frame  selection.Frame
	ticker *selection.Ticker
	cancel context.CancelFunc

	// mouseDrag is set while a pointer button is held on a token.
	mouseDrag bool

	transitioned bool
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.Leaver = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a game screen over sess. next builds the completion screen.
func New(sess *session.Session, cfg Config, next func() screen.Screen) *GameScreen {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &GameScreen{
		sess: sess,
		cfg:  cfg,
		log:  log.With("session", sess.ID()),
		keys: defaultKeyMap(),
		next: next,
	}
}

func (s *GameScreen) Title() string {
	return s.sess.Current().Title
}

// Status reports the scenario counter for the header.
func (s *GameScreen) Status() string {
	return scenarioCounter(s.sess.Index(), s.sess.Len())
}

func (s *GameScreen) Init() tea.Cmd {
	s.refresh()
	c, ok := s.continuous()
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(s.cfg.Context)
	s.cancel = cancel
	s.ticker = c.Animate(ctx, s.cfg.frameInterval())
	return waitFrame(s.ticker)
}

// Leave stops the animation. The session stays usable.
func (s *GameScreen) Leave() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *GameScreen) continuous() (*selection.Continuous, bool) {
	c, ok := s.sess.Engine().(*selection.Continuous)
	return c, ok
}

func (s *GameScreen) discrete() (*selection.Discrete, bool) {
	d, ok := s.sess.Engine().(*selection.Discrete)
	return d, ok
}

func (s *GameScreen) refresh() {
	if c, ok := s.continuous(); ok {
		s.frame = c.Snapshot()
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case frameMsg:
		if msg.ticker != s.ticker {
			return s, nil
		}
		s.frame = msg.frame
		return s, waitFrame(msg.ticker)

	case tickerStoppedMsg:
		return s, nil

	case tea.BlurMsg:
		s.mouseDrag = false
		s.dispatch(selection.FocusLost{})
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)

	case tea.MouseClickMsg:
		return s, s.handleClick(msg.Mouse())

	case tea.MouseMotionMsg:
		s.handleMotion(msg.Mouse())
		return s, nil

	case tea.MouseReleaseMsg:
		s.handleRelease(msg.Mouse())
		return s, nil
	}
	return s, nil
}

// dispatch applies ev to the engine. Contract violations are logged and
// otherwise ignored.
func (s *GameScreen) dispatch(ev selection.Event) {
	err := selection.Dispatch(s.sess.Engine(), ev)
	s.refresh()
	if err != nil {
		s.warn("input rejected", err, "event", ev)
	}
}

func (s *GameScreen) warn(msg string, err error, args ...any) {
	args = append(args, "error", err, "index", s.sess.Index())
	if !isContract(err) {
		s.log.Error(msg, args...)
		return
	}
	s.log.Warn(msg, args...)
}

func (s *GameScreen) universe() modes.Universe {
	return s.sess.Universe()
}

func (s *GameScreen) focused() modes.Name {
	u := s.universe()
	if s.focus < 0 || s.focus >= len(u) {
		s.focus = 0
	}
	return u[s.focus]
}

func (s *GameScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Submit) {
		return s.submit()
	}

	if c, ok := s.continuous(); ok {
		if mode, dragging := c.Dragging(); dragging {
			s.handleDragKey(c, mode, msg)
			return nil
		}
	}

	switch {
	case key.Matches(msg, s.keys.Next):
		s.focus = (s.focus + 1) % len(s.universe())
		return nil
	case key.Matches(msg, s.keys.Prev):
		n := len(s.universe())
		s.focus = (s.focus - 1 + n) % n
		return nil
	case key.Matches(msg, s.keys.Toggle):
		s.grab(s.focused())
		return nil
	}

	if i, ok := digit(msg); ok && i < len(s.universe()) {
		s.focus = i
		s.toggle(s.universe()[i])
	}
	return nil
}

// handleDragKey moves or drops a keyboard drag in the continuous field.
func (s *GameScreen) handleDragKey(c *selection.Continuous, mode modes.Name, msg tea.KeyPressMsg) {
	p := c.Snapshot().Pointer
	switch {
	case key.Matches(msg, s.keys.Toggle):
		s.dispatch(selection.PointerUp{Pos: p})
	case key.Matches(msg, s.keys.Cancel):
		s.dispatch(selection.FocusLost{})
	case key.Matches(msg, s.keys.Up):
		s.dispatch(selection.PointerMove{Pos: s.clampField(selection.Point{X: p.X, Y: p.Y - moveStep})})
	case key.Matches(msg, s.keys.Down):
		s.dispatch(selection.PointerMove{Pos: s.clampField(selection.Point{X: p.X, Y: p.Y + moveStep})})
	case key.Matches(msg, s.keys.Left):
		s.dispatch(selection.PointerMove{Pos: s.clampField(selection.Point{X: p.X - moveStep, Y: p.Y})})
	case key.Matches(msg, s.keys.Right):
		s.dispatch(selection.PointerMove{Pos: s.clampField(selection.Point{X: p.X + moveStep, Y: p.Y})})
	default:
		s.log.Debug("key ignored during drag", "key", msg.String(), "mode", mode)
	}
}

func (s *GameScreen) clampField(p selection.Point) selection.Point {
	c, ok := s.continuous()
	if !ok {
		return p
	}
	g := c.Geometry()
	return selection.Point{
		X: selection.Clamp(p.X, 0, g.Width),
		Y: selection.Clamp(p.Y, 0, g.Height),
	}
}

// grab starts a keyboard drag in the continuous field, or toggles the
// focused mode in the discrete palette.
func (s *GameScreen) grab(mode modes.Name) {
	if _, ok := s.continuous(); !ok {
		s.toggle(mode)
		return
	}
	s.dispatch(selection.PointerDown{Mode: mode, Pos: tokenPosition(s.frame, mode)})
}

// toggle flips membership of mode with a complete drag gesture.
func (s *GameScreen) toggle(mode modes.Name) {
	if c, ok := s.continuous(); ok {
		from := tokenPosition(s.frame, mode)
		to := c.Geometry().Center
		if c.Locked(mode) {
			to = restPosition(s.frame, mode)
		}
		s.dispatch(selection.PointerDown{Mode: mode, Pos: from})
		s.dispatch(selection.PointerUp{Pos: to})
		return
	}
	s.dispatch(selection.DragStart{Mode: mode})
	s.dispatch(selection.DragOver{Container: selection.Diagnosis})
	s.dispatch(selection.Drop{Container: selection.Diagnosis})
	s.dispatch(selection.DragEnd{})
}

// submit checks the answer or advances, depending on state.
func (s *GameScreen) submit() tea.Cmd {
	if !s.sess.HasChecked() {
		if _, ok := s.continuous(); ok {
			s.dispatch(selection.FocusLost{})
		}
		if s.sess.Selection().Empty() {
			return nil
		}
		if _, err := s.sess.Check(); err != nil {
			s.warn("check rejected", err)
		}
		return nil
	}

	if err := s.sess.Advance(); err != nil {
		s.warn("advance rejected", err)
		return nil
	}
	s.focus = 0
	s.refresh()
	if s.sess.Complete() {
		return s.transition()
	}
	return nil
}

func (s *GameScreen) transition() tea.Cmd {
	if s.transitioned || s.next == nil {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *GameScreen) handleClick(m tea.Mouse) tea.Cmd {
	if m.Button != tea.MouseLeft {
		return nil
	}
	sc := s.scene()

	if sc.Hit(m.X, m.Y) == buttonID {
		return s.submit()
	}
	if mode, ok := sc.hitMode(m.X, m.Y, tokenPrefix); ok {
		s.mouseDrag = true
		s.dispatch(selection.PointerDown{Mode: mode, Pos: sc.fieldPoint(m.X, m.Y)})
		return nil
	}
	if mode, ok := sc.hitMode(m.X, m.Y, palettePrefix); ok {
		s.focus = s.universe().Index(mode)
		s.mouseDrag = true
		s.dispatch(selection.DragStart{Mode: mode})
	}
	return nil
}

func (s *GameScreen) handleMotion(m tea.Mouse) {
	if !s.mouseDrag {
		return
	}
	sc := s.scene()

	if _, ok := s.continuous(); ok {
		if !sc.within(fieldID, m.X, m.Y) {
			s.mouseDrag = false
			s.dispatch(selection.PointerLeave{})
			return
		}
		s.dispatch(selection.PointerMove{Pos: sc.fieldPoint(m.X, m.Y)})
		return
	}

	d, _ := s.discrete()
	over := sc.within(zoneID, m.X, m.Y)
	switch {
	case over && !d.Hovering():
		s.dispatch(selection.DragOver{Container: selection.Diagnosis})
	case !over && d.Hovering():
		s.dispatch(selection.DragLeave{Container: selection.Diagnosis})
	}
}

func (s *GameScreen) handleRelease(m tea.Mouse) {
	if !s.mouseDrag {
		return
	}
	s.mouseDrag = false
	sc := s.scene()

	if _, ok := s.continuous(); ok {
		if !sc.within(fieldID, m.X, m.Y) {
			s.dispatch(selection.PointerLeave{})
			return
		}
		s.dispatch(selection.PointerUp{Pos: sc.fieldPoint(m.X, m.Y)})
		return
	}

	target := selection.Palette
	if sc.within(zoneID, m.X, m.Y) {
		target = selection.Diagnosis
	}
	s.dispatch(selection.Drop{Container: target})
	s.dispatch(selection.DragEnd{})
}

// KeyHints returns the footer hints for the current state.
func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.sess.HasChecked() {
		h := hint(s.keys.Submit)
		h.Description = nextLabel(s.sess)
		return []layout.KeyHint{h}
	}
	if c, ok := s.continuous(); ok {
		if _, dragging := c.Dragging(); dragging {
			return []layout.KeyHint{hint(s.keys.Up), {Key: "Space", Description: "Drop"}, hint(s.keys.Cancel)}
		}
	}
	hints := []layout.KeyHint{
		hint(s.keys.Next),
		{Key: "1-" + strconv.Itoa(len(s.universe())), Description: "Toggle mode"},
		hint(s.keys.Toggle),
	}
	if !s.sess.Selection().Empty() {
		hints = append(hints, hint(s.keys.Submit))
	}
	return hints
}

func nextLabel(sess *session.Session) string {
	if sess.Index() < sess.Len()-1 {
		return "Next Scenario"
	}
	return "View Results"
}

func digit(msg tea.KeyPressMsg) (int, bool) {
	k := msg.Key()
	if len(k.Text) != 1 || k.Text[0] < '1' || k.Text[0] > '9' {
		return 0, false
	}
	return int(k.Text[0] - '1'), true
}

func tokenPosition(f selection.Frame, mode modes.Name) selection.Point {
	for _, t := range f.Tokens {
		if t.Mode == mode {
			return t.Position
		}
	}
	return selection.Point{}
}

func restPosition(f selection.Frame, mode modes.Name) selection.Point {
	for _, t := range f.Tokens {
		if t.Mode == mode {
			return t.Rest
		}
	}
	return selection.Point{}
}

// isContract reports whether err is an expected rejection rather than a bug.
func isContract(err error) bool {
	return errors.Is(err, session.ErrInvalidOperation) ||
		errors.Is(err, selection.ErrConcurrentDrag) ||
		errors.Is(err, selection.ErrNoActiveDrag) ||
		errors.Is(err, selection.ErrUnsupportedEvent) ||
		errors.Is(err, modes.ErrUnknownMode)
}
