package match

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
	"github.com/abhisek/knowduel/internal/ui/components"
	"github.com/abhisek/knowduel/internal/ui/layout"
)

// MatchScreen plays the turns of a game. The player's actions go straight
// to the engine; computer actions are replayed one at a time on a timer.
type MatchScreen struct {
	engine *duel.Engine
	opts   Options
	state  duel.State

	menu  components.Menu
	input components.TextInput
	mc    components.MultiChoice

	// questionKey identifies the question the inputs were built for.
	questionKey string

	// awaitingAck holds the screen on the result of the player's answer
	// until a key is pressed.
	awaitingAck bool
	answered    bool
	correct     bool

	seq    int
	errMsg string
}

var _ screen.Screen = (*MatchScreen)(nil)
var _ screen.KeyHintProvider = (*MatchScreen)(nil)
var _ screen.StatusProvider = (*MatchScreen)(nil)

// NewMatch creates the turn screen for an engine that has finished the
// pregame.
func NewMatch(engine *duel.Engine, opts Options) *MatchScreen {
	m := &MatchScreen{
		engine: engine,
		opts:   opts,
		state:  engine.State(),
	}
	m.sync()
	return m
}

func (m *MatchScreen) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.next())
}

func (m *MatchScreen) Title() string {
	return "Duel"
}

func (m *MatchScreen) Status() string {
	s := m.state
	return fmt.Sprintf("%s %d : %d %s",
		s.Players[duel.SideSelf].Name, s.Players[duel.SideSelf].Score,
		s.Players[duel.SideOpponent].Score, s.Players[duel.SideOpponent].Name)
}

func (m *MatchScreen) KeyHints() []layout.KeyHint {
	switch {
	case m.awaitingAck:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case m.computerActive():
		return []layout.KeyHint{{Key: "Esc", Description: "Leave game"}}
	case m.state.Question == nil:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Choose category"},
			{Key: "Esc", Description: "Leave game"},
		}
	case m.isMultipleChoice():
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Pick"},
			{Key: "Esc", Description: "Leave game"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave game"},
	}
}

func (m *MatchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case computerStepMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		return m, m.computerStep()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.playerAnswering() && !m.isMultipleChoice() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MatchScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.awaitingAck {
		m.awaitingAck = false
		m.answered = false
		m.sync()
		return m.next()
	}
	if m.state.Phase != duel.PhasePlaying || m.computerActive() {
		return nil
	}

	if m.state.Question == nil {
		if msg.String() == "enter" {
			if item, ok := m.menu.Current(); ok {
				return m.selectCategory(catalog.Category(item.Label))
			}
			return nil
		}
		m.menu, _ = m.menu.Update(msg)
		return nil
	}

	if m.isMultipleChoice() {
		m.mc, _ = m.mc.Update(msg)
		if m.mc.Submitted {
			return m.submit(m.engine.SubmitChoice(m.mc.Choice()))
		}
		return nil
	}

	if msg.String() == "enter" {
		if m.input.Value() == "" {
			return nil
		}
		return m.submit(m.engine.SubmitAnswer(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *MatchScreen) selectCategory(c catalog.Category) tea.Cmd {
	st, err := m.engine.SelectCategory(c)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.state = st
	m.sync()
	return tea.Batch(m.input.Init(), m.next())
}

// submit records the result of the player's answer and holds the screen
// until the player acknowledges it. Only a correct answer raises the
// player's score, so the score delta tells right from wrong even when the
// turn has already ended.
func (m *MatchScreen) submit(st duel.State, err error) tea.Cmd {
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	before := m.state.Players[duel.SideSelf].Score
	m.errMsg = ""
	m.state = st
	m.answered = true
	m.correct = st.Players[duel.SideSelf].Score > before
	m.input.Submit(m.correct)
	m.mc.Reveal(m.correct)
	m.awaitingAck = true
	return nil
}

// next schedules whatever follows the current state: a computer action,
// the result screen, or nothing while the player is to act.
func (m *MatchScreen) next() tea.Cmd {
	if m.awaitingAck {
		return nil
	}
	switch {
	case m.state.Phase == duel.PhaseGameOver:
		return m.finish()
	case m.computerActive():
		m.seq++
		seq := m.seq
		return tea.Tick(m.opts.ComputerDelay, func(t time.Time) tea.Msg {
			return computerStepMsg{Seq: seq}
		})
	}
	return nil
}

// computerStep performs one computer action: a category pick at a turn
// boundary, otherwise an answer.
func (m *MatchScreen) computerStep() tea.Cmd {
	if !m.computerActive() {
		return nil
	}
	var (
		st  duel.State
		err error
	)
	if m.state.Question == nil {
		st, err = m.engine.AutoSelectCategory()
	} else {
		st, err = m.engine.SubmitAnswer("")
	}
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.state = st
	m.sync()
	if st.Phase == duel.PhaseGameOver {
		m.awaitingAck = true
		return nil
	}
	return tea.Batch(m.input.Init(), m.next())
}

func (m *MatchScreen) finish() tea.Cmd {
	m.seq++
	if m.opts.OnResult != nil {
		m.opts.OnResult(m.state.Winner)
	}
	over := NewGameOver(m.engine, m.opts, m.state)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: over}
	}
}

// sync rebuilds the inputs when the question or available set changed.
func (m *MatchScreen) sync() {
	avail := m.state.Available(duel.SideSelf)
	items := make([]components.MenuItem, len(avail))
	for i, c := range avail {
		items[i] = components.MenuItem{
			Label: string(c),
			Note:  m.categoryNote(c),
		}
	}
	m.menu = m.menu.SetItems(items)

	key := questionKey(m.state)
	if key == m.questionKey {
		return
	}
	m.questionKey = key
	m.input = components.NewTextInput("Type your answer...", 80)
	m.mc = components.MultiChoice{}
	if q := m.state.Question; q != nil && q.Kind == catalog.KindMultipleChoice {
		m.mc = components.NewMultiChoice(q.Choices)
	}
}

func (m *MatchScreen) categoryNote(c catalog.Category) string {
	self := m.state.Players[duel.SideSelf]
	switch {
	case self.IsStrength(c) && self.IsWeakness(c):
		return "strength, weakness"
	case self.IsStrength(c):
		return "strength"
	case self.IsWeakness(c):
		return "weakness"
	}
	return ""
}

func questionKey(s duel.State) string {
	if s.Question == nil {
		return ""
	}
	return fmt.Sprintf("%s/%d/%d/%s/%s", s.GameID, s.TurnCount, s.Degree, s.ActivePlayer(), s.Question.Prompt)
}

func (m *MatchScreen) computerActive() bool {
	return m.state.Phase == duel.PhasePlaying && m.state.ActivePlayer() == duel.SideOpponent
}

func (m *MatchScreen) playerAnswering() bool {
	return !m.awaitingAck && m.state.Phase == duel.PhasePlaying &&
		m.state.ActivePlayer() == duel.SideSelf && m.state.Question != nil
}

func (m *MatchScreen) isMultipleChoice() bool {
	return m.state.Question != nil && m.state.Question.Kind == catalog.KindMultipleChoice
}
