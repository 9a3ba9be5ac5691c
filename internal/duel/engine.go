// Package duel implements the knowledge-duel state machine: pregame profile
// assignment, category runs through escalating degrees, scoring, steals and
// game-over evaluation.
//
// An Engine is driven by a single caller. Every operation is a synchronous
// transition that returns a full State snapshot.
package duel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/judge"
	"github.com/abhisek/knowduel/internal/scoring"
)

// Engine owns one game's state.
type Engine struct {
	cfg     Config
	catalog catalog.Catalog
	rng     Rand
	judge   *judge.Judge
	policy  *scoring.Policy
	over    GameOverEvaluator
	logger  *slog.Logger
	state   State
}

// NewEngine validates cfg and returns an engine in the strength-picking
// phase. A nil rng is replaced by a randomly seeded one; a nil logger
// discards output.
func NewEngine(cfg Config, cat catalog.Catalog, rng Rand, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if rng == nil {
		rng = NewRand(rand.Uint64())
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		cfg:     cfg,
		catalog: cat,
		rng:     rng,
		judge:   judge.New(cfg.FuzzyThreshold),
		policy:  scoring.New(cfg.Scoring()),
		over:    GameOverEvaluator{RoundLimit: cfg.RoundLimit},
		logger:  logger,
	}
	e.StartAssignment()
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns a snapshot of the current game.
func (e *Engine) State() State {
	return e.state.Clone()
}

// Reset discards the current game and starts a new one with a new GameID.
func (e *Engine) Reset() State {
	return e.StartAssignment()
}

// SelectCategory starts a category run for the active side at degree 1.
// During a steal offer it starts the stealer's run. If the category has no
// degree-1 content the turn passes and no error is returned.
func (e *Engine) SelectCategory(c catalog.Category) (State, error) {
	s := &e.state
	if s.Phase != PhasePlaying {
		return e.State(), newError(CodeOutOfPhase, "select category during %s", s.Phase)
	}
	if s.InTurn() {
		return e.State(), newError(CodeOutOfPhase, "category %q already selected", s.Category)
	}
	side := s.ActivePlayer()
	if !s.CanSelect(side, c) {
		return e.State(), newError(CodeInvalidSelection, "%q is not available to %s", c, side)
	}

	e.startRun(side, c)
	e.logTransition("select_category", side)
	return e.State(), nil
}

// AutoSelectCategory picks uniformly from the computer's available set.
// It is valid only when the computer is active at a turn boundary.
func (e *Engine) AutoSelectCategory() (State, error) {
	s := &e.state
	if s.Phase != PhasePlaying || s.InTurn() || s.ActivePlayer() != SideOpponent {
		return e.State(), newError(CodeOutOfPhase, "computer cannot select a category now")
	}
	avail := s.Available(SideOpponent)
	if len(avail) == 0 {
		return e.State(), newError(CodeInvalidSelection, "computer has no available categories")
	}
	return e.SelectCategory(avail[e.rng.IntN(len(avail))])
}

// SubmitAnswer resolves the current question for the active side. The human
// side is judged against the accepted answers; for the computer, text is
// ignored and correctness is sampled with ComputerAccuracy.
func (e *Engine) SubmitAnswer(text string) (State, error) {
	s := &e.state
	if s.Phase != PhasePlaying {
		return e.State(), newError(CodeOutOfPhase, "submit answer during %s", s.Phase)
	}
	if s.Question == nil {
		return e.State(), newError(CodeOutOfPhase, "no question to answer")
	}

	side := s.ActivePlayer()
	var correct bool
	if side == SideOpponent {
		correct = e.computerSucceeds()
	} else {
		correct = e.judge.Check(*s.Question, text)
	}

	if s.StealState == StealAwaitingCategory {
		s.StealState = StealAttempting
	}
	if correct {
		e.answerCorrect(side)
	} else {
		e.answerWrong(side)
	}
	e.logTransition("submit_answer", side)
	return e.State(), nil
}

// SubmitChoice answers a multiple-choice question by 1-based choice index.
func (e *Engine) SubmitChoice(index int) (State, error) {
	q := e.state.Question
	if e.state.Phase != PhasePlaying || q == nil {
		return e.State(), newError(CodeOutOfPhase, "no question to answer")
	}
	if q.Kind != catalog.KindMultipleChoice {
		return e.State(), newError(CodeInvalidSelection, "question is not multiple choice")
	}
	if index < 1 || index > len(q.Choices) {
		return e.State(), newError(CodeInvalidSelection, "choice %d out of range 1..%d", index, len(q.Choices))
	}
	return e.SubmitAnswer(q.Choices[index-1])
}

func (e *Engine) computerSucceeds() bool {
	return e.rng.Float64() < e.cfg.ComputerAccuracy
}

// startRun fixes a random degree-1 topic for c and draws its first
// question. With no eligible topic the turn passes.
func (e *Engine) startRun(side Side, c catalog.Category) {
	s := &e.state
	s.LastPoints = 0

	topic, err := e.drawTopic(c)
	if err != nil {
		s.Feedback = fmt.Sprintf("No valid Degree 1 questions for %s. Turn passes.", c)
		e.endTurn(OutcomeNoContent)
		return
	}
	q, _ := e.drawQuestion(topic, 1)

	if s.StealState == StealAwaitingCategory {
		s.StealState = StealAttempting
	}
	s.Category = c
	s.Topic = &topic
	s.Degree = 1
	s.Question = &q
	s.Outcome = OutcomeNone
	s.Feedback = fmt.Sprintf("%s chose %s: %s, Degree 1.", s.Players[side].Name, c, topic.Name)
}

func (e *Engine) drawTopic(c catalog.Category) (catalog.Topic, error) {
	var eligible []catalog.Topic
	for _, t := range e.catalog.Topics(c) {
		if t.ValidFor(1) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return catalog.Topic{}, fmt.Errorf("%s: %w", c, ErrNoContent)
	}
	return eligible[e.rng.IntN(len(eligible))], nil
}

func (e *Engine) drawQuestion(t catalog.Topic, degree int) (catalog.Question, error) {
	pool := t.Questions(degree)
	if len(pool) == 0 {
		return catalog.Question{}, fmt.Errorf("%s degree %d: %w", t.Name, degree, ErrNoContent)
	}
	return pool[e.rng.IntN(len(pool))], nil
}

// answerCorrect scores the answer for side and either advances the run or
// masters the category.
func (e *Engine) answerCorrect(side Side) {
	s := &e.state
	p := &s.Players[side]
	steal := s.StealState != StealNone

	pts := e.policy.Points(scoring.Award{
		Degree:   s.Degree,
		Kind:     s.Question.Kind,
		Weakness: p.IsWeakness(s.Category),
		Strength: p.IsStrength(s.Category),
		Steal:    steal,
	})
	p.Score += pts
	s.LastPoints = pts
	s.LastAnswered = side

	if s.Degree >= e.cfg.MaxDegree {
		p.Mastered = append(p.Mastered, s.Category)
		s.Feedback = fmt.Sprintf("%s has mastered %s for topic %q!", p.Name, s.Category, s.Topic.Name)
		e.endTurn(OutcomeMastered)
		return
	}

	next := s.Degree + 1
	q, err := e.drawQuestion(*s.Topic, next)
	if err != nil {
		s.Feedback = fmt.Sprintf("No questions for %q at Degree %d. Turn passes.", s.Topic.Name, next)
		e.endTurn(OutcomeNoContent)
		return
	}
	s.Degree = next
	s.Question = &q

	if steal {
		s.Outcome = OutcomeStealSucceeded
		s.Feedback = fmt.Sprintf("%s stole %s! +%d points. On to Degree %d.", p.Name, s.Category, pts, next)
		return
	}
	s.Outcome = OutcomeAdvanced
	s.Feedback = fmt.Sprintf("Correct! +%d points. On to Degree %d.", pts, next)
}

// endTurn closes the current turn: clears every turn field, advances the
// counters and evaluates game over.
func (e *Engine) endTurn(outcome Outcome) {
	s := &e.state
	computerTurn := s.TurnOwner() == SideOpponent || s.LastAnswered == SideOpponent

	s.clearTurn()
	s.TurnCount++
	if computerTurn {
		s.Round++
	}
	s.Outcome = outcome

	if e.evaluate() {
		return
	}
	e.skipEmptyTurns()
}

// skipEmptyTurns passes over a side with nothing left to select. When both
// sides are empty the game ends on points.
func (e *Engine) skipEmptyTurns() {
	s := &e.state
	for s.Phase == PhasePlaying && !s.InTurn() {
		side := s.ActivePlayer()
		if len(s.Available(side)) > 0 {
			return
		}
		if len(s.Available(side.Other())) == 0 {
			e.finish(ReasonPoints)
			return
		}
		s.Feedback = fmt.Sprintf("%s has no categories left. Turn skipped.", s.Players[side].Name)
		e.endTurn(OutcomeSkipped)
	}
}

// evaluate applies the game-over rules at a turn boundary.
func (e *Engine) evaluate() bool {
	over, reason := e.over.Evaluate(e.state)
	if over {
		e.finish(reason)
	}
	return over
}

func (e *Engine) finish(reason string) {
	s := &e.state
	s.Phase = PhaseGameOver
	s.clearTurn()
	s.Reason = reason
	s.Winner = Winner(*s)

	if s.Winner == SideNone {
		s.Feedback = fmt.Sprintf("Game over %s. It's a draw!", reason)
	} else {
		s.Feedback = fmt.Sprintf("Game over %s. %s wins!", reason, s.Players[s.Winner].Name)
	}
	e.logger.Info("game over",
		"game_id", s.GameID,
		"reason", reason,
		"winner", s.Winner.String(),
		"self_score", s.Players[SideSelf].Score,
		"opponent_score", s.Players[SideOpponent].Score,
		"round", s.Round,
		"turn", s.TurnCount,
	)
}

func (e *Engine) logTransition(op string, side Side) {
	s := &e.state
	e.logger.Debug("transition",
		"op", op,
		"game_id", s.GameID,
		"turn", s.TurnCount,
		"round", s.Round,
		"side", side.String(),
		"category", string(s.Category),
		"degree", s.Degree,
		"outcome", s.Outcome.String(),
		"points", s.LastPoints,
	)
}
