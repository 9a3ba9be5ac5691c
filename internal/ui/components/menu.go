package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/ui/theme"
)

// MenuItem is one selectable row. Note is shown dimmed after the label.
type MenuItem struct {
	Label    string
	Note     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu that skips disabled rows.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.firstEnabled(0, 1)
	return m
}

// firstEnabled walks from start in direction step and returns the first
// enabled index, or start clamped into range when none is enabled.
func (m Menu) firstEnabled(start, step int) int {
	for i := start; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return min(max(start, 0), max(len(m.Items)-1, 0))
}

// SetItems swaps the rows, keeping the cursor near its old position.
func (m Menu) SetItems(items []MenuItem) Menu {
	old := m.Selected
	m.Items = items
	m.Selected = m.firstEnabled(min(old, max(len(items)-1, 0)), 1)
	if m.Selected < len(items) && items[m.Selected].Disabled {
		m.Selected = m.firstEnabled(m.Selected, -1)
	}
	return m
}

// Current returns the item under the cursor, if it is enabled.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Init returns nil.
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu, one row per item.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		var row string
		switch {
		case item.Disabled:
			row = theme.Disabled.Render("    " + item.Label)
		case i == m.Selected:
			row = theme.Selected.Render("  ▸ " + item.Label)
		default:
			row = theme.Unselected.Render("    " + item.Label)
		}
		if item.Note != "" {
			row += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Note)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
