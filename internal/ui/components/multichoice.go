package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/ui/theme"
)

// MultiChoice lets the player pick one option with the arrows and enter,
// or directly with the number keys 1..9.
type MultiChoice struct {
	Options   []string
	Selected  int
	Submitted bool
	correct   bool
	revealed  bool
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or submits a choice.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.Submitted = true
		}
	}

	return m, nil
}

// Choice returns the 1-based index of the submitted option, or 0.
func (m MultiChoice) Choice() int {
	if !m.Submitted {
		return 0
	}
	return m.Selected + 1
}

// Reveal colours the submitted option by whether it was right.
func (m *MultiChoice) Reveal(correct bool) {
	m.revealed = true
	m.correct = correct
}

// View renders the numbered options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && i == m.Selected && m.correct:
			style = theme.Correct
		case m.revealed && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted && i == m.Selected:
			style = theme.Selected
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
