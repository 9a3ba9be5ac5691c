package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/ui/theme"
)

// ProgressBar shows Value out of Max as a filled bar, e.g. the degree
// reached in a category run.
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
}

// NewProgressBar creates a bar of total width w.
func NewProgressBar(label string, value, maxValue, w int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Max: maxValue, Width: w}
}

// Fraction returns Value/Max clamped to [0,1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(float64(p.Value)/float64(p.Max), 0), 1)
}

// View renders the label, bar and a "value/max" counter.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	counter := fmt.Sprintf("  %d/%d", p.Value, p.Max)

	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)
	filled := int(float64(barWidth) * p.Fraction())

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
}
