package match

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/layout"
	"github.com/abhisek/knowduel/internal/ui/theme"
)

// SetupScreen runs the pregame: the player picks their own strengths,
// then the weaknesses the computer has to live with.
type SetupScreen struct {
	engine *duel.Engine
	opts   Options
	state  duel.State
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.StatusProvider = (*SetupScreen)(nil)

// NewSetup creates the pregame screen for a freshly reset engine.
func NewSetup(engine *duel.Engine, opts Options) *SetupScreen {
	s := &SetupScreen{
		engine: engine,
		opts:   opts,
		state:  engine.State(),
	}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *SetupScreen) items() []components.MenuItem {
	cats := s.engine.Config().Categories
	items := make([]components.MenuItem, len(cats))
	for i, c := range cats {
		items[i] = components.MenuItem{
			Label:    string(c),
			Note:     s.note(c),
			Disabled: s.picked(c),
		}
	}
	return items
}

// picked reports whether c was already chosen in the current step.
func (s *SetupScreen) picked(c catalog.Category) bool {
	if s.state.Phase == duel.PhaseAssigningStrengths {
		return s.state.Players[duel.SideSelf].IsStrength(c)
	}
	return s.state.Players[duel.SideOpponent].IsWeakness(c)
}

func (s *SetupScreen) note(c catalog.Category) string {
	var tags []string
	if s.state.Players[duel.SideSelf].IsStrength(c) {
		tags = append(tags, "your strength")
	}
	if s.state.Players[duel.SideOpponent].IsWeakness(c) {
		tags = append(tags, "AI weakness")
	}
	return strings.Join(tags, ", ")
}

func (s *SetupScreen) pick(c catalog.Category) tea.Cmd {
	var (
		st  duel.State
		err error
	)
	if s.state.Phase == duel.PhaseAssigningStrengths {
		st, err = s.engine.PickStrength(c)
	} else {
		st, err = s.engine.PickWeaknessForOpponent(c)
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.errMsg = ""
	s.state = st
	if st.Phase == duel.PhasePlaying || st.Phase == duel.PhaseGameOver {
		next := NewMatch(s.engine, s.opts)
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
	s.menu = s.menu.SetItems(s.items())
	return nil
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		if item, ok := s.menu.Current(); ok {
			return s, s.pick(catalog.Category(item.Label))
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) Title() string {
	return "Pregame"
}

func (s *SetupScreen) Status() string {
	picks := s.engine.Config().PicksPerSide
	if s.state.Phase == duel.PhaseAssigningStrengths {
		return fmt.Sprintf("Strengths %d/%d", len(s.state.Players[duel.SideSelf].Strengths), picks)
	}
	return fmt.Sprintf("Weaknesses %d/%d", len(s.state.Players[duel.SideOpponent].Weaknesses), picks)
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Pick"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := "Pick your strengths"
	sub := "Categories you choose for yourself."
	if s.state.Phase == duel.PhaseAssigningWeaknesses {
		heading = "Assign weaknesses to the AI"
		sub = "Each correct answer the AI gives in these scores a bonus."
	}

	sections := []string{
		theme.Title.Width(cw).Render(heading),
		theme.Subtitle.Width(cw).Render(sub),
		components.ArcadeCard(s.menu.View(), cw),
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	} else {
		sections = append(sections, theme.Hint.Render(s.state.Feedback))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
