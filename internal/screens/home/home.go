package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/layout"
)

// Entry is one playable question pack on the menu.
type Entry struct {
	Label string
	Mode  catalog.Mode
}

// StartFunc builds the first screen of a new game played with mode.
type StartFunc func(mode catalog.Mode) (screen.Screen, error)

// Record counts finished games in this run of the program.
type Record struct {
	Wins, Losses, Draws int
}

// HomeScreen lets the player choose a question pack or quit.
type HomeScreen struct {
	menu          components.Menu
	labels        []string
	cfg           duel.Config
	record        Record
	mascotVariant MascotVariant
	errMsg        string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen with one menu entry per pack plus Exit.
func New(entries []Entry, cfg duel.Config, start StartFunc) *HomeScreen {
	h := &HomeScreen{cfg: cfg}

	items := make([]components.MenuItem, 0, len(entries)+1)
	for _, e := range entries {
		mode := e.Mode
		items = append(items, components.MenuItem{
			Label:  e.Label,
			Action: func() tea.Cmd { return h.start(start, mode) },
		})
		h.labels = append(h.labels, e.Label)
	}
	items = append(items, components.MenuItem{
		Label:  "EXIT",
		Action: func() tea.Cmd { return tea.Quit },
	})
	h.labels = append(h.labels, "EXIT")

	h.menu = components.NewMenu(items)
	return h
}

// BuiltinEntries lists the embedded packs in menu order.
func BuiltinEntries() []Entry {
	var out []Entry
	for _, m := range catalog.Modes() {
		out = append(out, Entry{Label: strings.ToUpper(m.Label()), Mode: m})
	}
	return out
}

func (h *HomeScreen) start(start StartFunc, mode catalog.Mode) tea.Cmd {
	next, err := start(mode)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// Record returns the win/loss tally shown on the menu.
func (h *HomeScreen) Record() Record {
	return h.record
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// RecordResult tallies a finished game and sets the mascot's mood.
func (h *HomeScreen) RecordResult(winner duel.Side) {
	switch winner {
	case duel.SideSelf:
		h.record.Wins++
		h.mascotVariant = MascotCelebrating
	case duel.SideOpponent:
		h.record.Losses++
		h.mascotVariant = MascotAlert
	default:
		h.record.Draws++
		h.mascotVariant = MascotIdle
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderRulesBar(h.cfg, h.record, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.labels, h.menu.Selected, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
