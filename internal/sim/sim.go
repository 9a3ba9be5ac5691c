// Package sim plays complete duels without a terminal. The human side is
// replaced by a bot that answers correctly with a fixed probability.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
)

// DefaultMaxSteps bounds a simulated game.
const DefaultMaxSteps = 1000

// ErrStepLimit is returned when a game does not finish within MaxSteps.
var ErrStepLimit = errors.New("step limit reached before game over")

// Options configures a Runner.
type Options struct {
	// Accuracy is the probability the bot answers its own questions
	// correctly.
	Accuracy float64

	// MaxSteps caps engine calls. Zero means DefaultMaxSteps.
	MaxSteps int

	// Out receives the turn log. Nil discards it.
	Out io.Writer
}

// Runner drives one engine from pregame to game over.
type Runner struct {
	engine *duel.Engine
	rng    duel.Rand
	opts   Options
	steps  int
}

// New creates a Runner. rng drives the bot's picks and answers.
func New(engine *duel.Engine, rng duel.Rand, opts Options) (*Runner, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if rng == nil {
		return nil, errors.New("rand is required")
	}
	if opts.Accuracy < 0 || opts.Accuracy > 1 {
		return nil, fmt.Errorf("accuracy must be in [0,1], got %v", opts.Accuracy)
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Runner{engine: engine, rng: rng, opts: opts}, nil
}

// Steps returns the number of engine calls made so far.
func (r *Runner) Steps() int {
	return r.steps
}

// Run plays the engine's current game to the end and returns the final
// snapshot.
func (r *Runner) Run(ctx context.Context) (duel.State, error) {
	st := r.engine.State()
	for st.Phase != duel.PhaseGameOver {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		if r.steps >= r.opts.MaxSteps {
			return st, ErrStepLimit
		}

		next, err := r.step(st)
		r.steps++
		if err != nil {
			return next, fmt.Errorf("step %d: %w", r.steps, err)
		}
		r.logLine(st, next)
		st = next
	}

	r.printResult(st)
	return st, nil
}

func (r *Runner) step(st duel.State) (duel.State, error) {
	switch st.Phase {
	case duel.PhaseAssigningStrengths:
		return r.engine.PickStrength(r.pick(st.Players[duel.SideSelf].Strengths))
	case duel.PhaseAssigningWeaknesses:
		return r.engine.PickWeaknessForOpponent(r.pick(st.Players[duel.SideOpponent].Weaknesses))
	}

	if st.ActivePlayer() == duel.SideOpponent {
		if st.Question == nil {
			return r.engine.AutoSelectCategory()
		}
		return r.engine.SubmitAnswer("")
	}

	if st.Question == nil {
		avail := st.Available(duel.SideSelf)
		return r.engine.SelectCategory(avail[r.rng.IntN(len(avail))])
	}
	return r.engine.SubmitAnswer(r.answer(*st.Question))
}

// pick returns a random configured category not in taken.
func (r *Runner) pick(taken []catalog.Category) catalog.Category {
	var pool []catalog.Category
	for _, c := range r.engine.Config().Categories {
		if !slices.Contains(taken, c) {
			pool = append(pool, c)
		}
	}
	return pool[r.rng.IntN(len(pool))]
}

func (r *Runner) answer(q catalog.Question) string {
	if r.rng.Float64() < r.opts.Accuracy {
		return q.Answers[0]
	}
	for _, c := range q.Choices {
		if !slices.Contains(q.Answers, c) {
			return c
		}
	}
	return "?"
}

func (r *Runner) logLine(prev, st duel.State) {
	if st.Phase != duel.PhasePlaying && st.Phase != duel.PhaseGameOver {
		return
	}
	if prev.Phase != duel.PhasePlaying {
		self, opp := st.Players[duel.SideSelf], st.Players[duel.SideOpponent]
		fmt.Fprintf(r.opts.Out, "%s picks: strengths %v, weaknesses %v\n", self.Name, self.Strengths, self.Weaknesses)
		fmt.Fprintf(r.opts.Out, "%s picks: strengths %v, weaknesses %v\n", opp.Name, opp.Strengths, opp.Weaknesses)
		return
	}
	fmt.Fprintf(r.opts.Out, "R%d T%02d %-16s %3d : %-3d %s\n",
		prev.Round, prev.TurnCount, st.Outcome,
		st.Players[duel.SideSelf].Score, st.Players[duel.SideOpponent].Score,
		st.Feedback)
}

func (r *Runner) printResult(st duel.State) {
	self, opp := st.Players[duel.SideSelf], st.Players[duel.SideOpponent]
	fmt.Fprintln(r.opts.Out, st.Feedback)
	fmt.Fprintf(r.opts.Out, "%s %d (mastered %v) : %s %d (mastered %v) after %d turns\n",
		self.Name, self.Score, self.Mastered, opp.Name, opp.Score, opp.Mastered, st.TurnCount)
}
