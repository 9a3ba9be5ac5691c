package match

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/theme"
)

func (m *MatchScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s := m.state

	sections := []string{
		renderScoreboard(s, cw),
		m.renderTurnLine(cw),
		m.renderBody(cw),
		m.renderFeedback(cw),
	}
	if m.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(m.errMsg))
	}
	if m.awaitingAck {
		sections = append(sections, theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n\n"))
}

// renderScoreboard shows both profiles side by side.
func renderScoreboard(s duel.State, cw int) string {
	half := cw / 2
	left := renderPlayerCard(s, duel.SideSelf, half, theme.SelfColor)
	right := renderPlayerCard(s, duel.SideOpponent, cw-half, theme.OpponentColor)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderPlayerCard(s duel.State, side duel.Side, w int, fg color.Color) string {
	p := s.Players[side]
	name := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(p.Name)
	if s.Phase == duel.PhasePlaying && s.ActivePlayer() == side {
		name = "▸ " + name
	}

	lines := []string{
		name,
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("%d pts", p.Score)),
		"",
		renderCategoryLine("Strong", p.Strengths, s),
		renderCategoryLine("Weak", p.Weaknesses, s),
		fmt.Sprintf("Mastered %d/%d", len(p.Mastered), s.StartPool[side]),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Width(w).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderCategoryLine lists cats, striking out claimed ones.
func renderCategoryLine(label string, cats []catalog.Category, s duel.State) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		if s.Claimed(c) {
			parts[i] = theme.Mastered.Render(string(c))
		} else {
			parts[i] = string(c)
		}
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label+": ") + strings.Join(parts, ", ")
}

func (m *MatchScreen) renderTurnLine(cw int) string {
	s := m.state
	limit := m.engine.Config().RoundLimit
	round := min(s.Round, limit)

	line := fmt.Sprintf("Round %d of %d  ·  Turn %d  ·  %s to play",
		round, limit, s.TurnCount+1, s.Players[s.ActivePlayer()].Name)
	if s.StealState != duel.StealNone {
		line += "  " + theme.Steal.Render("STEAL!")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(line)
}

func (m *MatchScreen) renderBody(cw int) string {
	s := m.state
	switch {
	case s.Phase == duel.PhaseGameOver:
		return components.ArcadeCard(theme.Title.Render("Game over"), cw)
	case s.Question != nil:
		return m.renderQuestion(cw)
	case m.computerActive():
		return components.ArcadeCardColor(
			lipgloss.NewStyle().Foreground(theme.OpponentColor).Render(s.Players[duel.SideOpponent].Name+" is choosing a category..."),
			cw, theme.OpponentColor)
	}

	title := "Choose a category"
	if s.StealState == duel.StealAwaitingCategory {
		title = "Choose a category to steal"
	}
	return components.ArcadeCard(theme.Title.Render(title)+"\n\n"+m.menu.View(), cw)
}

func (m *MatchScreen) renderQuestion(cw int) string {
	s := m.state
	q := s.Question

	topic := ""
	if s.Topic != nil {
		topic = s.Topic.Name
	}
	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%s · %s", s.Category, topic))
	bar := components.NewProgressBar("Degree", s.Degree, m.engine.Config().MaxDegree, cw-8).View()
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 8).Render(q.Prompt)

	var answer string
	switch {
	case m.computerActive():
		answer = lipgloss.NewStyle().Foreground(theme.OpponentColor).
			Render(s.Players[duel.SideOpponent].Name + " is answering...")
	case q.Kind == catalog.KindMultipleChoice:
		answer = lipgloss.NewStyle().Align(lipgloss.Left).Render(m.mc.View())
	default:
		answer = m.input.View()
	}

	border := theme.SelfColor
	if s.ActivePlayer() == duel.SideOpponent {
		border = theme.OpponentColor
	}
	return components.ArcadeCardColor(strings.Join([]string{header, bar, "", prompt, "", answer}, "\n"), cw, border)
}

func (m *MatchScreen) renderFeedback(cw int) string {
	s := m.state
	style := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	switch {
	case m.answered && m.correct:
		style = style.Foreground(theme.Success).Bold(true)
	case m.answered:
		style = style.Foreground(theme.Error).Bold(true)
	case s.Outcome == duel.OutcomeStealOffered || s.Outcome == duel.OutcomeStealSucceeded:
		style = style.Foreground(theme.ArcadeYellow).Bold(true)
	case s.Outcome == duel.OutcomeMastered:
		style = style.Foreground(theme.Success).Bold(true)
	default:
		style = style.Foreground(theme.TextDim)
	}
	return style.Render(s.Feedback)
}
