package duel

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/abhisek/knowduel/internal/catalog"
)

// scriptedRand replays queued values. An empty int queue yields 0 and an
// empty float queue yields 0 (computer succeeds).
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

const (
	history   catalog.Category = "History"
	science   catalog.Category = "Science"
	maths     catalog.Category = "Math"
	geography catalog.Category = "Geography"
	sports    catalog.Category = "Sports"
	art       catalog.Category = "Art"
)

var testCategories = []catalog.Category{history, science, maths, geography, sports, art}

func mcQuestion(cat catalog.Category, degree int) catalog.Question {
	return catalog.Question{
		Kind:    catalog.KindMultipleChoice,
		Prompt:  fmt.Sprintf("%s degree %d", cat, degree),
		Choices: []string{"right", "wrong"},
		Answers: []string{"right"},
	}
}

func fullTopic(cat catalog.Category, name string) catalog.Topic {
	return catalog.Topic{
		Name:     name,
		Category: cat,
		Degrees: map[int][]catalog.Question{
			1: {mcQuestion(cat, 1)},
			2: {mcQuestion(cat, 2)},
			3: {mcQuestion(cat, 3)},
		},
	}
}

// testCatalog has one full topic per category except Math, which has none.
// History degree 1 is free text with answer "Boston".
func testCatalog() *catalog.Memory {
	revolution := fullTopic(history, "American Revolution")
	revolution.Degrees[1] = []catalog.Question{{
		Kind:    catalog.KindFreeText,
		Prompt:  "Where did the Tea Party take place?",
		Answers: []string{"Boston"},
	}}
	return catalog.NewMemory(
		revolution,
		fullTopic(science, "Cells"),
		fullTopic(geography, "Capitals"),
		fullTopic(sports, "Olympics"),
		fullTopic(art, "Painters"),
	)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Categories = testCategories
	return cfg
}

// sampleScript returns the IntN results that make sample pick want from pool.
func sampleScript(pool, want []catalog.Category) []int {
	buf := slices.Clone(pool)
	var out []int
	for i, w := range want {
		j := slices.Index(buf, w)
		out = append(out, j-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return out
}

type setup struct {
	cfg          Config
	catalog      catalog.Catalog
	strengths    []catalog.Category
	oppWeak      []catalog.Category
	oppStrengths []catalog.Category
	selfWeak     []catalog.Category
}

func defaultSetup() setup {
	return setup{
		cfg:          testConfig(),
		catalog:      testCatalog(),
		strengths:    []catalog.Category{history, science, maths},
		oppWeak:      []catalog.Category{geography, sports, art},
		oppStrengths: []catalog.Category{science, geography, sports},
		selfWeak:     []catalog.Category{geography, sports, art},
	}
}

// start plays the pregame and returns an engine in PhasePlaying.
func (s setup) start(t *testing.T) (*Engine, *scriptedRand) {
	t.Helper()
	rng := &scriptedRand{}
	rng.ints = append(rng.ints, sampleScript(s.cfg.Categories, s.oppStrengths)...)
	rng.ints = append(rng.ints, sampleScript(s.cfg.Categories, s.selfWeak)...)

	e, err := NewEngine(s.cfg, s.catalog, rng, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for _, c := range s.strengths {
		if _, err := e.PickStrength(c); err != nil {
			t.Fatalf("PickStrength(%s): %v", c, err)
		}
	}
	for _, c := range s.oppWeak {
		if _, err := e.PickWeaknessForOpponent(c); err != nil {
			t.Fatalf("PickWeaknessForOpponent(%s): %v", c, err)
		}
	}
	if e.State().Phase != PhasePlaying {
		t.Fatalf("Phase = %s, want playing", e.State().Phase)
	}
	return e, rng
}

// mustOK fails the test on a transition error and returns the snapshot:
// mustOK(t)(e.SelectCategory(c)).
func mustOK(t *testing.T) func(State, error) State {
	t.Helper()
	return func(st State, err error) State {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return st
	}
}

func TestNewEngine_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.RoundLimit = 0
	if _, err := NewEngine(cfg, testCatalog(), nil, nil); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := NewEngine(testConfig(), nil, nil, nil); err == nil {
		t.Error("expected error for nil catalog")
	}

	e, err := NewEngine(testConfig(), testCatalog(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	st := e.State()
	if st.Phase != PhaseAssigningStrengths {
		t.Errorf("Phase = %s, want assigning_strengths", st.Phase)
	}
	if st.Round != 1 {
		t.Errorf("Round = %d, want 1", st.Round)
	}
	if st.GameID == "" {
		t.Error("GameID should be set")
	}
}

func TestPregame(t *testing.T) {
	s := defaultSetup()
	rng := &scriptedRand{}
	rng.ints = append(sampleScript(s.cfg.Categories, s.oppStrengths), sampleScript(s.cfg.Categories, s.selfWeak)...)
	e, err := NewEngine(s.cfg, s.catalog, rng, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// Weakness before strengths are done.
	if _, err := e.PickWeaknessForOpponent(art); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("early weakness err = %v, want ErrInvalidSelection", err)
	}

	mustOK(t)(e.PickStrength(history))
	before := e.State()

	// Duplicate and unknown picks leave state untouched.
	if _, err := e.PickStrength(history); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("duplicate err = %v, want ErrInvalidSelection", err)
	}
	if _, err := e.PickStrength("Cooking"); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("unknown err = %v, want ErrInvalidSelection", err)
	}
	if got := e.State().Players[SideSelf].Strengths; !slices.Equal(got, before.Players[SideSelf].Strengths) {
		t.Errorf("Strengths = %v, want %v", got, before.Players[SideSelf].Strengths)
	}

	mustOK(t)(e.PickStrength(science))
	st := mustOK(t)(e.PickStrength(maths))
	if st.Phase != PhaseAssigningWeaknesses {
		t.Fatalf("Phase = %s, want assigning_weaknesses", st.Phase)
	}

	// A fourth strength is over quota.
	if _, err := e.PickStrength(art); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("4th strength err = %v, want ErrInvalidSelection", err)
	}

	mustOK(t)(e.PickWeaknessForOpponent(geography))
	if _, err := e.PickWeaknessForOpponent(geography); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("duplicate weakness err = %v, want ErrInvalidSelection", err)
	}
	mustOK(t)(e.PickWeaknessForOpponent(sports))
	st = mustOK(t)(e.PickWeaknessForOpponent(art))

	if st.Phase != PhasePlaying {
		t.Fatalf("Phase = %s, want playing", st.Phase)
	}
	self, opp := st.Players[SideSelf], st.Players[SideOpponent]
	if !slices.Equal(self.Strengths, s.strengths) {
		t.Errorf("self strengths = %v, want %v", self.Strengths, s.strengths)
	}
	if !slices.Equal(opp.Weaknesses, s.oppWeak) {
		t.Errorf("opponent weaknesses = %v, want %v", opp.Weaknesses, s.oppWeak)
	}
	if !slices.Equal(opp.Strengths, s.oppStrengths) {
		t.Errorf("opponent strengths = %v, want %v", opp.Strengths, s.oppStrengths)
	}
	if !slices.Equal(self.Weaknesses, s.selfWeak) {
		t.Errorf("self weaknesses = %v, want %v", self.Weaknesses, s.selfWeak)
	}
	for _, p := range st.Players {
		if len(p.Strengths) != 3 || len(p.Weaknesses) != 3 {
			t.Errorf("%s has %d strengths, %d weaknesses, want 3 and 3", p.Name, len(p.Strengths), len(p.Weaknesses))
		}
	}

	// Self: History, Science, Math, Geography, Sports, Art.
	// Opponent: Science, Geography, Sports, Art.
	if st.StartPool != [2]int{6, 4} {
		t.Errorf("StartPool = %v, want [6 4]", st.StartPool)
	}
	if st.ActivePlayer() != SideSelf || st.TurnCount != 0 || st.Round != 1 {
		t.Errorf("start: active=%s turn=%d round=%d", st.ActivePlayer(), st.TurnCount, st.Round)
	}

	// Pregame operations are out of phase once playing.
	if _, err := e.PickStrength(art); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("PickStrength in play err = %v, want ErrOutOfPhase", err)
	}
	if _, err := e.PickWeaknessForOpponent(art); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("PickWeaknessForOpponent in play err = %v, want ErrOutOfPhase", err)
	}
}

func TestComputerProfileMayOverlap(t *testing.T) {
	s := defaultSetup()
	s.oppStrengths = []catalog.Category{history, science, maths}
	s.selfWeak = []catalog.Category{history, science, maths}
	e, _ := s.start(t)

	st := e.State()
	if got := st.Available(SideSelf); !slices.Equal(got, []catalog.Category{history, science, maths}) {
		t.Errorf("Available(self) = %v, want the three strengths", got)
	}
	if st.StartPool[SideSelf] != 3 {
		t.Errorf("StartPool[self] = %d, want 3", st.StartPool[SideSelf])
	}
}

func TestSelectAndAnswer_FreeTextDegreeOne(t *testing.T) {
	e, _ := defaultSetup().start(t)

	st := mustOK(t)(e.SelectCategory(history))
	if st.Degree != 1 || st.Topic == nil || st.Topic.Name != "American Revolution" {
		t.Fatalf("after select: degree=%d topic=%v", st.Degree, st.Topic)
	}
	if st.Question == nil || st.Question.Kind != catalog.KindFreeText {
		t.Fatalf("Question = %+v, want free text", st.Question)
	}

	st = mustOK(t)(e.SubmitAnswer("boston"))
	if got := st.Players[SideSelf].Score; got != 20 {
		t.Errorf("Score = %d, want 20", got)
	}
	if st.Degree != 2 {
		t.Errorf("Degree = %d, want 2", st.Degree)
	}
	if st.Outcome != OutcomeAdvanced {
		t.Errorf("Outcome = %s, want advanced", st.Outcome)
	}
	if st.Topic.Name != "American Revolution" {
		t.Errorf("topic changed mid-run to %q", st.Topic.Name)
	}
}

func TestWeaknessBonus(t *testing.T) {
	s := defaultSetup()
	s.selfWeak = []catalog.Category{history, sports, art}
	e, _ := s.start(t)

	mustOK(t)(e.SelectCategory(history))
	st := mustOK(t)(e.SubmitAnswer("Boston"))
	if got := st.Players[SideSelf].Score; got != 30 {
		t.Errorf("Score = %d, want 30 (20 base + 10 weakness)", got)
	}
}

func TestMastery_EndsTurnWithoutRound(t *testing.T) {
	e, _ := defaultSetup().start(t)

	mustOK(t)(e.SelectCategory(history))
	mustOK(t)(e.SubmitAnswer("Boston"))
	mustOK(t)(e.SubmitAnswer("right"))
	st := mustOK(t)(e.SubmitAnswer("right"))

	if st.Outcome != OutcomeMastered {
		t.Errorf("Outcome = %s, want mastered", st.Outcome)
	}
	if !st.Players[SideSelf].HasMastered(history) {
		t.Error("History should be mastered")
	}
	if slices.Contains(st.Available(SideSelf), history) {
		t.Error("mastered History still available")
	}
	if got := st.Players[SideSelf].Score; got != 70 {
		t.Errorf("Score = %d, want 70 (20+20+30)", got)
	}
	if st.TurnCount != 1 || st.Round != 1 {
		t.Errorf("turn=%d round=%d, want 1 and 1", st.TurnCount, st.Round)
	}
	if st.ActivePlayer() != SideOpponent {
		t.Errorf("ActivePlayer = %s, want AI Player", st.ActivePlayer())
	}
	if st.InTurn() || st.Topic != nil || st.Degree != 0 || st.Question != nil {
		t.Error("turn fields not cleared")
	}
	if st.Feedback != `Player 1 has mastered History for topic "American Revolution"!` {
		t.Errorf("Feedback = %q", st.Feedback)
	}
}

func TestComputerTurn_MasteryIncrementsRound(t *testing.T) {
	e, rng := defaultSetup().start(t)

	// Human misses Math, which has no content: turn passes.
	st := mustOK(t)(e.SelectCategory(maths))
	if st.Outcome != OutcomeNoContent || st.TurnCount != 1 {
		t.Fatalf("outcome=%s turn=%d, want no_content and 1", st.Outcome, st.TurnCount)
	}

	// Computer picks Geography (index 1 of Science, Geography, Sports, Art).
	rng.ints = []int{1}
	rng.floats = []float64{0.1, 0.1, 0.1}
	st = mustOK(t)(e.AutoSelectCategory())
	if st.Category != geography {
		t.Fatalf("computer picked %s, want Geography", st.Category)
	}
	mustOK(t)(e.SubmitAnswer(""))
	mustOK(t)(e.SubmitAnswer(""))
	st = mustOK(t)(e.SubmitAnswer(""))

	// Geography is a weakness the human assigned: (10+10)+(20+10)+(30+10).
	if got := st.Players[SideOpponent].Score; got != 90 {
		t.Errorf("opponent Score = %d, want 90", got)
	}
	if st.TurnCount != 2 || st.Round != 2 {
		t.Errorf("turn=%d round=%d, want 2 and 2", st.TurnCount, st.Round)
	}
	// Claimed by the computer, so gone for the human as well.
	if slices.Contains(st.Available(SideSelf), geography) {
		t.Error("Geography claimed by the computer is still available to the human")
	}
}

func TestHumanMiss_ComputerIneligible(t *testing.T) {
	e, rng := defaultSetup().start(t)

	mustOK(t)(e.SelectCategory(history))
	st := mustOK(t)(e.SubmitAnswer("Chicago"))

	if st.Outcome != OutcomeMissed {
		t.Errorf("Outcome = %s, want missed", st.Outcome)
	}
	if st.TurnCount != 1 || st.Round != 1 {
		t.Errorf("turn=%d round=%d, want 1 and 1", st.TurnCount, st.Round)
	}
	if len(rng.floats) != 0 {
		t.Error("unexpected float draw")
	}
	if st.Feedback != "Player 1 answered incorrectly. Turn passes." {
		t.Errorf("Feedback = %q", st.Feedback)
	}
}

func TestHumanMiss_ComputerStealsAndCapturesRun(t *testing.T) {
	e, rng := defaultSetup().start(t)

	mustOK(t)(e.SelectCategory(science))
	rng.floats = []float64{0.1}
	st := mustOK(t)(e.SubmitAnswer("wrong"))

	if st.Outcome != OutcomeStealSucceeded {
		t.Fatalf("Outcome = %s, want steal_succeeded", st.Outcome)
	}
	if got := st.Players[SideOpponent].Score; got != 20 {
		t.Errorf("opponent Score = %d, want 20 (2 x 10)", got)
	}
	if st.ActivePlayer() != SideOpponent || st.StealState != StealAttempting {
		t.Errorf("active=%s steal=%s, want AI Player attempting", st.ActivePlayer(), st.StealState)
	}
	if st.Degree != 2 {
		t.Errorf("Degree = %d, want 2", st.Degree)
	}

	rng.floats = []float64{0.1, 0.1}
	mustOK(t)(e.SubmitAnswer(""))
	st = mustOK(t)(e.SubmitAnswer(""))

	if got := st.Players[SideOpponent].Score; got != 120 {
		t.Errorf("opponent Score = %d, want 120 (20+40+60)", got)
	}
	if !st.Players[SideOpponent].HasMastered(science) {
		t.Error("Science should be mastered by the computer")
	}
	if st.Players[SideSelf].HasMastered(science) {
		t.Error("Science must not be mastered by both sides")
	}
	if slices.Contains(st.Available(SideSelf), science) {
		t.Error("Science still available to the human")
	}
	if st.TurnCount != 1 || st.Round != 2 {
		t.Errorf("turn=%d round=%d, want 1 and 2", st.TurnCount, st.Round)
	}
	if st.StealState != StealNone || st.Stealer != SideNone {
		t.Errorf("steal not cleared: %s %s", st.StealState, st.Stealer)
	}
}

func TestHumanMiss_ComputerStealFails(t *testing.T) {
	e, rng := defaultSetup().start(t)

	mustOK(t)(e.SelectCategory(science))
	rng.floats = []float64{0.95}
	st := mustOK(t)(e.SubmitAnswer("wrong"))

	if st.Outcome != OutcomeStealFailed {
		t.Errorf("Outcome = %s, want steal_failed", st.Outcome)
	}
	if st.Players[SideOpponent].Score != 0 || st.Players[SideSelf].Score != 0 {
		t.Error("no points expected")
	}
	if st.TurnCount != 1 || st.Round != 2 {
		t.Errorf("turn=%d round=%d, want 1 and 2", st.TurnCount, st.Round)
	}
}

func TestComputerMiss_StealRetainsQuestion(t *testing.T) {
	e, rng := defaultSetup().start(t)
	mustOK(t)(e.SelectCategory(maths)) // no content, passes

	mustOK(t)(e.SelectCategory(science))
	rng.floats = []float64{0.1, 0.95}
	mustOK(t)(e.SubmitAnswer(""))
	st := mustOK(t)(e.SubmitAnswer(""))

	if st.Outcome != OutcomeStealOffered {
		t.Fatalf("Outcome = %s, want steal_offered", st.Outcome)
	}
	if st.StealState != StealAwaitingCategory {
		t.Errorf("StealState = %s, want awaiting_steal_category", st.StealState)
	}
	if st.ActivePlayer() != SideSelf {
		t.Errorf("ActivePlayer = %s, want Player 1", st.ActivePlayer())
	}
	if st.LastAnswered == st.ActivePlayer() {
		t.Error("stealer must not be the side that just answered")
	}
	if st.Category != science || st.Degree != 2 || st.Question == nil {
		t.Fatalf("retained question lost: cat=%s degree=%d", st.Category, st.Degree)
	}

	// Selecting is out of phase while the question is retained.
	if _, err := e.SelectCategory(history); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("SelectCategory err = %v, want ErrOutOfPhase", err)
	}

	st = mustOK(t)(e.SubmitAnswer("right"))
	if st.Outcome != OutcomeStealSucceeded {
		t.Errorf("Outcome = %s, want steal_succeeded", st.Outcome)
	}
	if got := st.Players[SideSelf].Score; got != 40 {
		t.Errorf("Score = %d, want 40 (2 x 20)", got)
	}
	if st.Degree != 3 || st.ActivePlayer() != SideSelf {
		t.Errorf("degree=%d active=%s, want 3 and Player 1", st.Degree, st.ActivePlayer())
	}

	// A failed follow-up ends the turn with no second-order steal.
	st = mustOK(t)(e.SubmitAnswer("wrong"))
	if st.Outcome != OutcomeStealFailed {
		t.Errorf("Outcome = %s, want steal_failed", st.Outcome)
	}
	if st.TurnCount != 2 || st.Round != 2 {
		t.Errorf("turn=%d round=%d, want 2 and 2", st.TurnCount, st.Round)
	}
	if st.ActivePlayer() != SideSelf || st.StealState != StealNone {
		t.Errorf("active=%s steal=%s", st.ActivePlayer(), st.StealState)
	}
	if len(rng.floats) != 0 {
		t.Error("computer should not have attempted a second steal")
	}
}

func TestComputerMiss_StealNeedsCategory(t *testing.T) {
	s := defaultSetup()
	s.selfWeak = []catalog.Category{history, science, maths}
	e, rng := s.start(t)
	mustOK(t)(e.SelectCategory(maths))

	// Geography is not available to the human.
	mustOK(t)(e.SelectCategory(geography))
	rng.floats = []float64{0.95}
	st := mustOK(t)(e.SubmitAnswer(""))

	if st.StealState != StealAwaitingCategory || st.ActivePlayer() != SideSelf {
		t.Fatalf("steal=%s active=%s", st.StealState, st.ActivePlayer())
	}
	if st.InTurn() || st.Question != nil {
		t.Fatal("missed question should not be retained")
	}
	if _, err := e.SubmitAnswer("right"); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("SubmitAnswer err = %v, want ErrOutOfPhase", err)
	}
	if _, err := e.SelectCategory(geography); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("unavailable steal pick err = %v, want ErrInvalidSelection", err)
	}

	st = mustOK(t)(e.SelectCategory(history))
	if st.StealState != StealAttempting || st.Degree != 1 {
		t.Fatalf("steal=%s degree=%d", st.StealState, st.Degree)
	}
	st = mustOK(t)(e.SubmitAnswer("Boston"))
	// History is a self weakness here: 2 x (20 + 10).
	if got := st.Players[SideSelf].Score; got != 60 {
		t.Errorf("Score = %d, want 60", got)
	}
}

func TestNoContent_DegreeGapPassesTurn(t *testing.T) {
	gap := catalog.Topic{
		Name:     "Fractions",
		Category: maths,
		Degrees:  map[int][]catalog.Question{1: {mcQuestion(maths, 1)}},
	}
	s := defaultSetup()
	s.catalog = catalog.NewMemory(gap)
	e, _ := s.start(t)

	mustOK(t)(e.SelectCategory(maths))
	st := mustOK(t)(e.SubmitAnswer("right"))

	if st.Outcome != OutcomeNoContent {
		t.Errorf("Outcome = %s, want no_content", st.Outcome)
	}
	if got := st.Players[SideSelf].Score; got != 10 {
		t.Errorf("Score = %d, want 10", got)
	}
	if st.TurnCount != 1 || st.InTurn() {
		t.Errorf("turn=%d inTurn=%v", st.TurnCount, st.InTurn())
	}
	if st.Feedback != `No questions for "Fractions" at Degree 2. Turn passes.` {
		t.Errorf("Feedback = %q", st.Feedback)
	}
}

func TestOutOfPhase(t *testing.T) {
	e, _ := defaultSetup().start(t)

	if _, err := e.SubmitAnswer("x"); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("SubmitAnswer err = %v, want ErrOutOfPhase", err)
	}
	if _, err := e.AutoSelectCategory(); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("AutoSelectCategory err = %v, want ErrOutOfPhase", err)
	}
	if _, err := e.SelectCategory("Cooking"); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("SelectCategory err = %v, want ErrInvalidSelection", err)
	}

	mustOK(t)(e.SelectCategory(science))
	if _, err := e.SelectCategory(history); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("second SelectCategory err = %v, want ErrOutOfPhase", err)
	}

	var de *Error
	_, err := e.SelectCategory(history)
	if !errors.As(err, &de) || de.Code != CodeOutOfPhase {
		t.Errorf("errors.As = %v, want *Error with CodeOutOfPhase", err)
	}
}

func TestSubmitChoice(t *testing.T) {
	e, _ := defaultSetup().start(t)

	mustOK(t)(e.SelectCategory(history))
	if _, err := e.SubmitChoice(1); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("SubmitChoice on free text err = %v, want ErrInvalidSelection", err)
	}
	mustOK(t)(e.SubmitAnswer("Boston"))

	if _, err := e.SubmitChoice(3); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("SubmitChoice(3) err = %v, want ErrInvalidSelection", err)
	}
	st := mustOK(t)(e.SubmitChoice(1))
	if st.Degree != 3 || st.Players[SideSelf].Score != 40 {
		t.Errorf("degree=%d score=%d, want 3 and 40", st.Degree, st.Players[SideSelf].Score)
	}
}

func TestRoundLimitEndsGame(t *testing.T) {
	s := defaultSetup()
	s.cfg.RoundLimit = 1
	e, rng := s.start(t)

	mustOK(t)(e.SelectCategory(maths))
	mustOK(t)(e.SelectCategory(geography))
	rng.floats = []float64{0.1, 0.1, 0.1}
	mustOK(t)(e.SubmitAnswer(""))
	mustOK(t)(e.SubmitAnswer(""))
	st := mustOK(t)(e.SubmitAnswer(""))

	if st.Phase != PhaseGameOver {
		t.Fatalf("Phase = %s, want game_over", st.Phase)
	}
	if st.Reason != ReasonPoints {
		t.Errorf("Reason = %q, want %q", st.Reason, ReasonPoints)
	}
	if st.Winner != SideOpponent {
		t.Errorf("Winner = %s, want AI Player", st.Winner)
	}
	if st.Feedback != "Game over by Total Points Scored. AI Player wins!" {
		t.Errorf("Feedback = %q", st.Feedback)
	}
	if _, err := e.SelectCategory(history); !errors.Is(err, ErrOutOfPhase) {
		t.Errorf("SelectCategory after game over err = %v, want ErrOutOfPhase", err)
	}
}

func TestMasteryEndsGame(t *testing.T) {
	s := defaultSetup()
	s.cfg.Categories = []catalog.Category{history, science}
	s.cfg.PicksPerSide = 1
	s.strengths = []catalog.Category{history}
	s.oppWeak = []catalog.Category{science}
	s.oppStrengths = []catalog.Category{science}
	s.selfWeak = []catalog.Category{history}
	e, _ := s.start(t)

	mustOK(t)(e.SelectCategory(history))
	mustOK(t)(e.SubmitAnswer("Boston"))
	mustOK(t)(e.SubmitAnswer("right"))
	st := mustOK(t)(e.SubmitAnswer("right"))

	if st.Phase != PhaseGameOver || st.Reason != ReasonMastery {
		t.Fatalf("phase=%s reason=%q, want game_over by Mastery", st.Phase, st.Reason)
	}
	if st.Winner != SideSelf {
		t.Errorf("Winner = %s, want Player 1", st.Winner)
	}
}

func TestEmptyAvailableSetSkipsTurn(t *testing.T) {
	s := defaultSetup()
	s.cfg.Categories = []catalog.Category{history, science}
	s.cfg.PicksPerSide = 1
	s.strengths = []catalog.Category{history}
	s.oppWeak = []catalog.Category{history}
	s.oppStrengths = []catalog.Category{science}
	s.selfWeak = []catalog.Category{history}
	e, rng := s.start(t)

	// The computer steals History and masters it, leaving the human empty.
	mustOK(t)(e.SelectCategory(history))
	rng.floats = []float64{0.1, 0.1, 0.1}
	mustOK(t)(e.SubmitAnswer("Chicago"))
	mustOK(t)(e.SubmitAnswer(""))
	st := mustOK(t)(e.SubmitAnswer(""))
	if len(st.Available(SideSelf)) != 0 {
		t.Fatalf("Available(self) = %v, want empty", st.Available(SideSelf))
	}
	if st.Phase != PhasePlaying || st.ActivePlayer() != SideOpponent {
		t.Fatalf("phase=%s active=%s", st.Phase, st.ActivePlayer())
	}

	// Computer misses Science: no steal possible, then the human is skipped.
	mustOK(t)(e.SelectCategory(science))
	rng.floats = []float64{0.95}
	st = mustOK(t)(e.SubmitAnswer(""))

	if st.Outcome != OutcomeSkipped {
		t.Errorf("Outcome = %s, want skipped", st.Outcome)
	}
	if st.ActivePlayer() != SideOpponent {
		t.Errorf("ActivePlayer = %s, want AI Player", st.ActivePlayer())
	}
	if st.TurnCount != 3 || st.Round != 3 {
		t.Errorf("turn=%d round=%d, want 3 and 3", st.TurnCount, st.Round)
	}
}

func TestStateIsSnapshot(t *testing.T) {
	e, _ := defaultSetup().start(t)

	st := mustOK(t)(e.SelectCategory(history))
	st.Players[SideSelf].Strengths[0] = "Cooking"
	st.Players[SideSelf].Score = 999
	st.Question.Answers[0] = "Chicago"

	fresh := e.State()
	if fresh.Players[SideSelf].Strengths[0] != history {
		t.Error("mutating a snapshot changed engine strengths")
	}
	if fresh.Players[SideSelf].Score != 0 {
		t.Error("mutating a snapshot changed engine score")
	}
	if fresh.Question.Answers[0] != "Boston" {
		t.Error("mutating a snapshot changed the engine question")
	}
}

func TestStateTopicIsSnapshot(t *testing.T) {
	e, _ := defaultSetup().start(t)

	st := mustOK(t)(e.SelectCategory(history))
	st.Topic.Degrees[2][0].Prompt = "changed"
	st.Topic.Degrees[2][0].Answers[0] = "changed"
	delete(st.Topic.Degrees, 3)

	fresh := e.State()
	if _, ok := fresh.Topic.Degrees[3]; !ok {
		t.Error("deleting a snapshot degree removed it from the engine topic")
	}
	q := fresh.Topic.Degrees[2][0]
	if q.Prompt != "History degree 2" || q.Answers[0] != "right" {
		t.Errorf("engine degree 2 question = %+v, want it unchanged", q)
	}
}

func TestReset(t *testing.T) {
	e, _ := defaultSetup().start(t)
	before := e.State()
	mustOK(t)(e.SelectCategory(history))

	st := e.Reset()
	if st.Phase != PhaseAssigningStrengths {
		t.Errorf("Phase = %s, want assigning_strengths", st.Phase)
	}
	if st.GameID == before.GameID {
		t.Error("Reset should issue a new GameID")
	}
	if len(st.Players[SideSelf].Strengths) != 0 || st.InTurn() || st.Round != 1 || st.TurnCount != 0 {
		t.Errorf("Reset left state behind: %+v", st)
	}
}

// TestRandomGames drives seeded games to completion and checks the
// invariants after every transition.
func TestRandomGames(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rng := NewRand(seed)
		driver := NewRand(seed + 1000)
		cfg := testConfig()
		e, err := NewEngine(cfg, testCatalog(), rng, nil)
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}

		picks := sample(driver, cfg.Categories, 6)
		for _, c := range picks[:3] {
			mustOK(t)(e.PickStrength(c))
		}
		var st State
		for _, c := range picks[3:] {
			st = mustOK(t)(e.PickWeaknessForOpponent(c))
		}

		for steps := 0; st.Phase == PhasePlaying; steps++ {
			if steps > 1000 {
				t.Fatalf("seed %d: game did not terminate", seed)
			}
			prev := st
			switch {
			case !st.InTurn() && st.ActivePlayer() == SideOpponent:
				st, err = e.AutoSelectCategory()
			case !st.InTurn():
				avail := st.Available(SideSelf)
				st, err = e.SelectCategory(avail[driver.IntN(len(avail))])
			default:
				answer := "wrong"
				if driver.Float64() < 0.6 {
					answer = "right"
				}
				st, err = e.SubmitAnswer(answer)
			}
			if err != nil {
				t.Fatalf("seed %d step %d: %v", seed, steps, err)
			}
			checkInvariants(t, seed, prev, st)
		}

		if st.Phase != PhaseGameOver || st.Reason == "" {
			t.Errorf("seed %d: phase=%s reason=%q", seed, st.Phase, st.Reason)
		}
		if st.Winner != Winner(st) {
			t.Errorf("seed %d: Winner = %s, want %s", seed, st.Winner, Winner(st))
		}
	}
}

func checkInvariants(t *testing.T, seed uint64, prev, st State) {
	t.Helper()
	for _, side := range []Side{SideSelf, SideOpponent} {
		p := st.Players[side]
		if p.Score < prev.Players[side].Score {
			t.Errorf("seed %d: %s score decreased", seed, p.Name)
		}
		for _, c := range st.Available(side) {
			if p.HasMastered(c) {
				t.Errorf("seed %d: %s has mastered %s but it is available", seed, p.Name, c)
			}
		}
		for _, c := range p.Mastered {
			if st.Players[side.Other()].HasMastered(c) {
				t.Errorf("seed %d: %s mastered by both sides", seed, c)
			}
		}
	}
	if st.Question != nil && (st.Degree < 1 || st.Degree > 3) {
		t.Errorf("seed %d: degree %d with a question", seed, st.Degree)
	}
	if st.Round < prev.Round || st.Round-1 > st.TurnCount {
		t.Errorf("seed %d: round %d after %d turns", seed, st.Round, st.TurnCount)
	}
	if st.StealState != StealNone && st.ActivePlayer() == st.TurnOwner() {
		t.Errorf("seed %d: steal held by the turn owner", seed)
	}
}
