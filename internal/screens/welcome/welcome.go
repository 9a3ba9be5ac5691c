package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	clashAt      = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "Pick your strengths. Steal the rest."

const selfCard = `┌─────┐
│ P 1 │
│  ?  │
└─────┘`

const opponentCard = `┌─────┐
│ A I │
│  !  │
└─────┘`

// spark frames flash between the two cards once they meet.
var sparkFrames = []string{"⚡", "✦", "★"}

type tickMsg time.Time

// WelcomeScreen plays a short splash, then hands over to the home screen
// on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory().
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// gap returns how many columns separate the cards; they slide together
// until clashAt.
func (w *WelcomeScreen) gap() int {
	const start = 20
	if w.elapsed >= clashAt {
		return 3
	}
	return 3 + int(float64(start-3)*(1-float64(w.elapsed)/float64(clashAt)))
}

func (w *WelcomeScreen) View(width, height int) string {
	left := lipgloss.NewStyle().Foreground(theme.SelfColor).Render(selfCard)
	right := lipgloss.NewStyle().Foreground(theme.OpponentColor).Render(opponentCard)

	middle := strings.Repeat(" ", w.gap())
	if w.elapsed >= clashAt {
		spark := sparkFrames[w.tickCount%len(sparkFrames)]
		middle = " " + lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(spark) + " "
	}
	middleCol := "\n" + middle + "\n" + middle

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Center, left, middleCol, right)}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
