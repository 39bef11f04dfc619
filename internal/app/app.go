package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/imodel/internal/router"
	"github.com/abhisek/imodel/internal/scenario"
	"github.com/abhisek/imodel/internal/screen"
	"github.com/abhisek/imodel/internal/screens/game"
	"github.com/abhisek/imodel/internal/screens/summary"
	"github.com/abhisek/imodel/internal/screens/welcome"
	"github.com/abhisek/imodel/internal/selection"
	"github.com/abhisek/imodel/internal/session"
	"github.com/abhisek/imodel/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	// Catalog is the scenario set to play. Nil selects the embedded catalog.
	Catalog *scenario.Catalog

	// Strategy picks the selection surface.
	Strategy selection.Kind

	// Geometry overrides the continuous field. The zero value selects
	// selection.DefaultGeometry.
	Geometry selection.Geometry

	// FPS is the continuous field animation rate.
	FPS int

	Context context.Context
	Logger  *slog.Logger

	// Copy writes exported results to the clipboard. Nil selects the system
	// clipboard.
	Copy func(string) error
}

func (o Options) withDefaults() (Options, error) {
	if o.Catalog == nil {
		cat, err := scenario.Default()
		if err != nil {
			return o, err
		}
		o.Catalog = cat
	}
	if o.Strategy == "" {
		o.Strategy = selection.KindDiscrete
	}
	if o.Geometry == (selection.Geometry{}) {
		o.Geometry = selection.DefaultGeometry()
	}
	if o.FPS <= 0 {
		o.FPS = game.DefaultConfig().FPS
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o, nil
}

func (o Options) factory() (selection.Factory, error) {
	switch o.Strategy {
	case selection.KindContinuous:
		if err := o.Geometry.Validate(); err != nil {
			return nil, err
		}
		return selection.ContinuousFactory(o.Geometry, nil), nil
	default:
		return selection.FactoryFor(o.Strategy)
	}
}

// flow builds the screens of one practice loop: welcome, game, summary and
// back to welcome.
type flow struct {
	sess *session.Session
	opts Options
	log  *slog.Logger
}

func (f *flow) welcome() screen.Screen {
	return welcome.New(f.game)
}

func (f *flow) game() screen.Screen {
	return game.New(f.sess, game.Config{
		FPS:     f.opts.FPS,
		Context: f.opts.Context,
		Logger:  f.log,
	}, f.summary)
}

func (f *flow) summary() screen.Screen {
	results := f.sess.Results()
	u := f.sess.Universe()
	return summary.New(session.BuildSummary(u, results), results, summary.Config{
		Universe:  u,
		SessionID: f.sess.ID(),
		Copy:      f.opts.Copy,
	}, f.restart)
}

func (f *flow) restart() screen.Screen {
	f.sess.Reset()
	return f.welcome()
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel with a fresh session on the welcome
// screen.
func newAppModel(opts Options) (AppModel, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return AppModel{}, err
	}
	factory, err := opts.factory()
	if err != nil {
		return AppModel{}, err
	}

	log := opts.Logger.With("component", "app")
	universe := opts.Catalog.Universe()
	sess, err := session.New(opts.Catalog, universe, factory,
		session.WithLogger(opts.Logger),
		session.WithOnComplete(func(results []session.Result) {
			sum := session.BuildSummary(universe, results)
			log.Info("practice complete",
				"correct", sum.CorrectCount,
				"partial", sum.PartialCount,
				"total", sum.Total)
		}),
	)
	if err != nil {
		return AppModel{}, err
	}

	f := &flow{sess: sess, opts: opts, log: opts.Logger}
	return AppModel{
		router: router.New(f.welcome()),
		sess:   sess,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens only see the area between header and footer.
		cmd := m.router.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: layout.ContentHeight(msg.Height),
		})
		return m, cmd

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.MouseClickMsg:
		return m, m.router.Update(tea.MouseClickMsg(contentMouse(msg.Mouse())))
	case tea.MouseMotionMsg:
		return m, m.router.Update(tea.MouseMotionMsg(contentMouse(msg.Mouse())))
	case tea.MouseReleaseMsg:
		return m, m.router.Update(tea.MouseReleaseMsg(contentMouse(msg.Mouse())))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// contentMouse translates terminal coordinates into content coordinates.
func contentMouse(mouse tea.Mouse) tea.Mouse {
	mouse.Y -= layout.HeaderHeight
	return mouse
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// close releases every screen and the session engine.
func (m AppModel) close() {
	m.router.Close()
	m.sess.Close()
}

// Run starts the Bubble Tea program and blocks until it exits or
// opts.Context is cancelled.
func Run(opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	m, err := newAppModel(opts)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	defer m.close()

	p := tea.NewProgram(m, tea.WithContext(opts.Context))
	if _, err := p.Run(); err != nil {
		if opts.Context.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
