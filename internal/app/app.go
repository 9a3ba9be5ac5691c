package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/screens/home"
	"github.com/abhisek/knowduel/internal/screens/match"
	"github.com/abhisek/knowduel/internal/screens/welcome"
	"github.com/abhisek/knowduel/internal/ui/layout"
)

// Options configures the interactive game.
type Options struct {
	Config duel.Config

	// Catalog replaces the built-in packs when set; CatalogName labels it
	// on the home menu.
	Catalog     catalog.Catalog
	CatalogName string

	// Modes restricts the built-in packs offered. Empty offers all.
	Modes []catalog.Mode

	// Rand drives every game of the run. Nil seeds one randomly.
	Rand duel.Rand

	Logger        *slog.Logger
	ComputerDelay time.Duration
	SkipWelcome   bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel wires the screens: welcome, then home, which starts games.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var homeScreen *home.HomeScreen
	screenOpts := match.Options{
		ComputerDelay: opts.ComputerDelay,
		OnResult: func(w duel.Side) {
			if homeScreen != nil {
				homeScreen.RecordResult(w)
			}
		},
	}

	start := func(mode catalog.Mode) (screen.Screen, error) {
		eng, err := newEngine(opts, mode)
		if err != nil {
			return nil, err
		}
		return match.NewSetup(eng, screenOpts), nil
	}

	homeFactory := func() screen.Screen {
		homeScreen = home.New(entries(opts), opts.Config, start)
		return homeScreen
	}

	if opts.SkipWelcome {
		return AppModel{router: router.New(homeFactory())}
	}
	return AppModel{router: router.New(welcome.New(homeFactory))}
}

func entries(opts Options) []home.Entry {
	if opts.Catalog != nil {
		name := opts.CatalogName
		if name == "" {
			name = "custom catalog"
		}
		return []home.Entry{{Label: strings.ToUpper(name)}}
	}
	if len(opts.Modes) == 0 {
		return home.BuiltinEntries()
	}
	var out []home.Entry
	for _, m := range opts.Modes {
		out = append(out, home.Entry{Label: strings.ToUpper(m.Label()), Mode: m})
	}
	return out
}

// newEngine builds an engine over the custom catalog, or the built-in
// pack for mode.
func newEngine(opts Options, mode catalog.Mode) (*duel.Engine, error) {
	cat := opts.Catalog
	if cat == nil {
		mem, err := catalog.Builtin(mode)
		if err != nil {
			return nil, err
		}
		cat = mem
	}
	eng, err := duel.NewEngine(opts.Config, cat, opts.Rand, opts.Logger.With("mode", string(mode)))
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return eng, nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
		if m.router.Depth() > 1 {
			hints = append([]layout.KeyHint{{Key: "Esc", Description: "Back"}}, hints...)
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the interactive game and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
