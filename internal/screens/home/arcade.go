package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/theme"
)

// Block-letter title, same art as the welcome banner.
const arcadeTitleFull = ` ██╗  ██╗███╗   ██╗ ██████╗ ██╗    ██╗
 ██║ ██╔╝████╗  ██║██╔═══██╗██║    ██║
 █████╔╝ ██╔██╗ ██║██║   ██║██║ █╗ ██║
 ██╔═██╗ ██║╚██╗██║██║   ██║██║███╗██║
 ██║  ██╗██║ ╚████║╚██████╔╝╚███╔███╔╝
 ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚══╝╚══╝  D U E L`

const arcadeTitleCompact = "K · N · O · W · D · U · E · L"

// buttonWidth is the fixed width of a menu button.
const buttonWidth = 26

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderRulesBar summarises the active rules in a double-bordered box.
func renderRulesBar(cfg duel.Config, record Record, cw int, compact bool) string {
	rounds := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	ai := lipgloss.NewStyle().Foreground(theme.OpponentColor).Bold(true)
	wins := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			rounds.Render(fmt.Sprintf("R%d", cfg.RoundLimit)),
			ai.Render(fmt.Sprintf("AI%d%%", int(cfg.ComputerAccuracy*100))),
			wins.Render(fmt.Sprintf("%d-%d", record.Wins, record.Losses)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			rounds.Render(fmt.Sprintf("★ %d ROUNDS", cfg.RoundLimit)),
			ai.Render(fmt.Sprintf("◆ AI %d%%", int(cfg.ComputerAccuracy*100))),
			wins.Render(fmt.Sprintf("⚡ %d W / %d L", record.Wins, record.Losses)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderArcadeMenu(labels []string, selected, cw int) string {
	buttons := make([]string, len(labels))
	for i, label := range labels {
		buttons[i] = components.ArcadeButton(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact drops the button borders for short terminals.
func renderArcadeMenuCompact(labels []string, selected, cw int) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}
