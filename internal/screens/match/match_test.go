package match

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/router"
	"github.com/abhisek/knowduel/internal/screen"
)

// fixedRand always draws the first candidate and returns f for every
// computer answer: f >= 0.7 makes the computer miss.
type fixedRand struct {
	f float64
}

func (r fixedRand) IntN(int) int     { return 0 }
func (r fixedRand) Float64() float64 { return r.f }

const (
	history catalog.Category = "History"
	science catalog.Category = "Science"
	art     catalog.Category = "Art"
	sports  catalog.Category = "Sports"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func topic(c catalog.Category) catalog.Topic {
	t := catalog.Topic{Name: string(c) + " basics", Category: c, Degrees: map[int][]catalog.Question{}}
	for d := 1; d <= 3; d++ {
		t.Degrees[d] = []catalog.Question{{
			Kind:    catalog.KindMultipleChoice,
			Prompt:  fmt.Sprintf("%s question %d", c, d),
			Choices: []string{"right", "wrong"},
			Answers: []string{"right"},
		}}
	}
	return t
}

// newEngine returns an engine still in the pregame. With fixedRand the
// computer takes History, Science and Art as strengths and hands the same
// three to the player as weaknesses.
func newEngine(t *testing.T, rounds int, f float64) *duel.Engine {
	t.Helper()
	cfg := duel.DefaultConfig()
	cfg.Categories = []catalog.Category{history, science, art, sports}
	cfg.RoundLimit = rounds

	cat := catalog.NewMemory(topic(history), topic(science), topic(art), topic(sports))
	e, err := duel.NewEngine(cfg, cat, fixedRand{f: f}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// startedEngine finishes the pregame: strengths History, Science, Art and
// AI weaknesses Art, Sports, Science.
func startedEngine(t *testing.T, rounds int, f float64) *duel.Engine {
	t.Helper()
	e := newEngine(t, rounds, f)
	for _, c := range []catalog.Category{history, science, art} {
		if _, err := e.PickStrength(c); err != nil {
			t.Fatalf("PickStrength(%s): %v", c, err)
		}
	}
	for _, c := range []catalog.Category{art, sports, science} {
		if _, err := e.PickWeaknessForOpponent(c); err != nil {
			t.Fatalf("PickWeaknessForOpponent(%s): %v", c, err)
		}
	}
	return e
}

func send(t *testing.T, s screen.Screen, msgs ...tea.Msg) (screen.Screen, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		s, cmd = s.Update(msg)
	}
	return s, cmd
}

func TestSetup_PicksThroughMenu(t *testing.T) {
	e := newEngine(t, 5, 0.99)
	s := NewSetup(e, Options{})

	if got := s.Status(); got != "Strengths 0/3" {
		t.Errorf("Status() = %q, want Strengths 0/3", got)
	}

	enter := specialKey(tea.KeyEnter)
	send(t, s, enter, enter, enter)
	if st := e.State(); st.Phase != duel.PhaseAssigningWeaknesses {
		t.Fatalf("Phase = %s, want assigning_weaknesses", st.Phase)
	}
	if got := s.Status(); got != "Weaknesses 0/3" {
		t.Errorf("Status() = %q, want Weaknesses 0/3", got)
	}

	_, cmd := send(t, s, enter, enter, enter)
	if cmd == nil {
		t.Fatal("last pick should hand over to the match")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want router.ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*MatchScreen); !ok {
		t.Errorf("replacement = %T, want *MatchScreen", msg.Screen)
	}

	st := e.State()
	want := []catalog.Category{art, sports, science}
	if got := st.Players[duel.SideOpponent].Weaknesses; !equal(got, want) {
		t.Errorf("AI weaknesses = %v, want %v", got, want)
	}
}

func TestSetup_DisabledAfterPick(t *testing.T) {
	e := newEngine(t, 5, 0.99)
	s := NewSetup(e, Options{})

	send(t, s, specialKey(tea.KeyEnter))
	if !s.menu.Items[0].Disabled {
		t.Error("picked strength should be disabled")
	}
	if s.menu.Selected != 1 {
		t.Errorf("cursor = %d, want 1", s.menu.Selected)
	}
	if !strings.Contains(s.View(100, 30), "your strength") {
		t.Error("view should tag the picked strength")
	}
}

func TestMatch_PlayerAnswersAndComputerTurn(t *testing.T) {
	e := startedEngine(t, 5, 0.99)
	m := NewMatch(e, Options{})

	if m.menu.Items[0].Label != string(history) {
		t.Fatalf("first category = %q, want History", m.menu.Items[0].Label)
	}

	// History degree 1, answered correctly with the number key.
	send(t, m, specialKey(tea.KeyEnter))
	if m.state.Question == nil || m.state.Category != history {
		t.Fatalf("expected a History question, got %+v", m.state.Question)
	}
	send(t, m, keyPress('1'))
	if !m.awaitingAck || !m.correct {
		t.Fatalf("awaitingAck=%v correct=%v, want both true", m.awaitingAck, m.correct)
	}
	if got := m.state.Players[duel.SideSelf].Score; got != 20 {
		t.Errorf("score = %d, want 20 (weakness bonus)", got)
	}

	// Acknowledge, then miss degree 2. The AI tries to steal and fails.
	send(t, m, keyPress(' '), keyPress('2'))
	if m.correct {
		t.Error("choice 2 should be wrong")
	}
	if m.state.Outcome != duel.OutcomeStealFailed {
		t.Errorf("Outcome = %s, want steal_failed", m.state.Outcome)
	}

	_, cmd := send(t, m, keyPress(' '))
	if cmd == nil {
		t.Fatal("computer turn should schedule a step")
	}
	if !m.computerActive() {
		t.Fatal("computer should be active")
	}

	// Keys are ignored while the computer plays.
	send(t, m, specialKey(tea.KeyEnter))
	if m.state.InTurn() {
		t.Fatal("player key should not act for the computer")
	}

	send(t, m, computerStepMsg{Seq: m.seq})
	if m.state.Category != history {
		t.Fatalf("AI category = %q, want History", m.state.Category)
	}
	send(t, m, computerStepMsg{Seq: m.seq})

	// The AI missed: the player may steal the retained question.
	if m.state.StealState != duel.StealAwaitingCategory || m.state.ActivePlayer() != duel.SideSelf {
		t.Fatalf("steal = %s active = %s, want awaiting for the player", m.state.StealState, m.state.ActivePlayer())
	}
	if len(m.mc.Options) != 2 {
		t.Fatalf("steal question should show choices, got %v", m.mc.Options)
	}

	send(t, m, keyPress('1'))
	if m.state.Outcome != duel.OutcomeStealSucceeded {
		t.Errorf("Outcome = %s, want steal_succeeded", m.state.Outcome)
	}
	if got := m.state.Players[duel.SideSelf].Score; got != 60 {
		t.Errorf("score = %d, want 60", got)
	}
	if !strings.Contains(m.View(100, 40), "STEAL!") {
		t.Error("view should flag the steal")
	}
}

func TestMatch_StaleComputerStepIgnored(t *testing.T) {
	e := startedEngine(t, 5, 0.99)
	m := NewMatch(e, Options{})

	before := m.state
	send(t, m, computerStepMsg{Seq: m.seq + 5})
	if m.state.TurnCount != before.TurnCount || m.state.InTurn() {
		t.Error("stale step should not change the game")
	}
}

func TestMatch_GameOverHandsOverToResult(t *testing.T) {
	e := startedEngine(t, 1, 0.99)
	var winner duel.Side = -1
	m := NewMatch(e, Options{OnResult: func(w duel.Side) { winner = w }})

	send(t, m, specialKey(tea.KeyEnter), keyPress('1'), keyPress(' '), keyPress('2'))
	if m.state.Phase != duel.PhaseGameOver {
		t.Fatalf("Phase = %s, want game_over", m.state.Phase)
	}
	if winner != -1 {
		t.Fatal("result reported before the player acknowledged it")
	}

	_, cmd := send(t, m, keyPress(' '))
	if cmd == nil {
		t.Fatal("acknowledging the end should move to the result screen")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want router.ReplaceScreenMsg", cmd())
	}
	over, ok := msg.Screen.(*GameOverScreen)
	if !ok {
		t.Fatalf("replacement = %T, want *GameOverScreen", msg.Screen)
	}
	if winner != duel.SideSelf {
		t.Errorf("OnResult winner = %s, want Player 1", winner)
	}
	if !strings.Contains(over.View(100, 40), "YOU WIN!") {
		t.Error("result screen should announce the win")
	}
}

func TestMatch_FreeTextAnswer(t *testing.T) {
	e := startedEngine(t, 5, 0.99)
	m := NewMatch(e, Options{})
	send(t, m, specialKey(tea.KeyEnter))

	// Swap in a free-text question the way the engine would show one.
	m.state.Question.Kind = catalog.KindFreeText
	if m.isMultipleChoice() {
		t.Fatal("question should be free text")
	}

	// Empty input is not submitted.
	send(t, m, specialKey(tea.KeyEnter))
	if m.awaitingAck {
		t.Fatal("empty answer should not submit")
	}

	m.input.Model.SetValue("right")
	send(t, m, specialKey(tea.KeyEnter))
	if !m.awaitingAck || !m.correct {
		t.Errorf("awaitingAck=%v correct=%v, want both true", m.awaitingAck, m.correct)
	}
}

func TestGameOver_PlayAgainAndHome(t *testing.T) {
	e := startedEngine(t, 1, 0.99)
	st := e.State()
	g := NewGameOver(e, Options{}, st)

	_, cmd := send(t, g, specialKey(tea.KeyRight), specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("Home should produce a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("Home cmd() = %T, want router.PopScreenMsg", cmd())
	}

	oldID := e.State().GameID
	_, cmd = send(t, g, keyPress('r'))
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("rematch cmd() = %T, want router.ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*SetupScreen); !ok {
		t.Errorf("replacement = %T, want *SetupScreen", msg.Screen)
	}
	if ns := e.State(); ns.Phase != duel.PhaseAssigningStrengths || ns.GameID == oldID {
		t.Errorf("engine not reset: phase %s, id changed %v", ns.Phase, ns.GameID != oldID)
	}
}

func equal(a, b []catalog.Category) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
