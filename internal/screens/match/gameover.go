package match

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/layout"
	"github.com/abhisek/knowduel/internal/ui/theme"
)

// GameOverScreen shows the final result and offers a rematch.
type GameOverScreen struct {
	engine  *duel.Engine
	opts    Options
	state   duel.State
	buttons []components.Button
	focus   int
}

var _ screen.Screen = (*GameOverScreen)(nil)
var _ screen.KeyHintProvider = (*GameOverScreen)(nil)

// NewGameOver creates the result screen for a finished game.
func NewGameOver(engine *duel.Engine, opts Options, st duel.State) *GameOverScreen {
	g := &GameOverScreen{engine: engine, opts: opts, state: st}
	g.buttons = []components.Button{
		components.NewButton("Play again", true, g.playAgain),
		components.NewButton("Home", false, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
	return g
}

// playAgain resets the engine and goes back to the pregame.
func (g *GameOverScreen) playAgain() tea.Cmd {
	g.engine.Reset()
	setup := NewSetup(g.engine, g.opts)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: setup}
	}
}

func (g *GameOverScreen) Init() tea.Cmd {
	return nil
}

func (g *GameOverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		g.focus = (g.focus + 1) % len(g.buttons)
		for i := range g.buttons {
			g.buttons[i].Active = i == g.focus
		}
		return g, nil
	case "r":
		return g, g.playAgain()
	}

	var cmd tea.Cmd
	g.buttons[g.focus], cmd = g.buttons[g.focus].Update(msg)
	return g, cmd
}

func (g *GameOverScreen) Title() string {
	return "Game Over"
}

func (g *GameOverScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Switch"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Rematch"},
	}
}

func (g *GameOverScreen) headline() (string, lipgloss.Style) {
	switch g.state.Winner {
	case duel.SideSelf:
		return "YOU WIN!", theme.Correct
	case duel.SideOpponent:
		return g.state.Players[duel.SideOpponent].Name + " WINS", theme.Incorrect
	}
	return "IT'S A DRAW", theme.Steal
}

func (g *GameOverScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s := g.state

	text, style := g.headline()
	lines := []string{
		style.Render(text),
		theme.Subtitle.Render("Game over " + s.Reason),
		"",
	}
	for _, side := range []duel.Side{duel.SideSelf, duel.SideOpponent} {
		p := s.Players[side]
		name := theme.SelfName
		if side == duel.SideOpponent {
			name = theme.OpponentName
		}
		mastered := "none"
		if len(p.Mastered) > 0 {
			parts := make([]string, len(p.Mastered))
			for i, c := range p.Mastered {
				parts[i] = string(c)
			}
			mastered = strings.Join(parts, ", ")
		}
		lines = append(lines,
			fmt.Sprintf("%s  %s", name.Render(p.Name), lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("%d pts", p.Score))),
			theme.Hint.Render("mastered: "+mastered),
			"",
		)
	}
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d rounds, %d turns", min(s.Round, g.engine.Config().RoundLimit), s.TurnCount)))

	views := make([]string, len(g.buttons))
	for i, b := range g.buttons {
		views[i] = b.View()
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, views[0], "   ", views[1])

	content := components.ArcadeCard(strings.Join(lines, "\n"), cw) + "\n\n" + buttons
	return components.CabinetFrame(content, width, height)
}
