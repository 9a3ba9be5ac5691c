package duel

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/knowduel/internal/catalog"
)

// newState returns a fresh pregame state.
func newState() State {
	return State{
		GameID: uuid.New().String(),
		Phase:  PhaseAssigningStrengths,
		Players: [2]Player{
			{Side: SideSelf, Name: SideSelf.String()},
			{Side: SideOpponent, Name: SideOpponent.String()},
		},
		Round:        1,
		Stealer:      SideNone,
		LastAnswered: SideNone,
		Winner:       SideNone,
		Feedback:     "Pick your strengths.",
	}
}

// StartAssignment discards any game in progress and returns a fresh state
// in the strength-picking phase.
func (e *Engine) StartAssignment() State {
	e.state = newState()
	e.logger.Info("game started", "game_id", e.state.GameID)
	return e.State()
}

// PickStrength adds c to the human's strengths. The last pick moves the game
// to weakness assignment.
func (e *Engine) PickStrength(c catalog.Category) (State, error) {
	s := &e.state
	switch s.Phase {
	case PhaseAssigningStrengths:
	case PhaseAssigningWeaknesses:
		return e.State(), newError(CodeInvalidSelection, "already picked %d strengths", e.cfg.PicksPerSide)
	default:
		return e.State(), newError(CodeOutOfPhase, "pick strength during %s", s.Phase)
	}

	self := &s.Players[SideSelf]
	if err := e.checkPick(self.Strengths, c); err != nil {
		return e.State(), err
	}
	self.Strengths = append(self.Strengths, c)
	s.Outcome = OutcomeNone

	if len(self.Strengths) == e.cfg.PicksPerSide {
		s.Phase = PhaseAssigningWeaknesses
		s.Feedback = "Assign weaknesses to your opponent."
	}
	return e.State(), nil
}

// PickWeaknessForOpponent assigns c as a weakness of the computer. The last
// pick samples the computer's own profile and starts play.
func (e *Engine) PickWeaknessForOpponent(c catalog.Category) (State, error) {
	s := &e.state
	switch s.Phase {
	case PhaseAssigningWeaknesses:
	case PhaseAssigningStrengths:
		return e.State(), newError(CodeInvalidSelection, "pick %d strengths first", e.cfg.PicksPerSide)
	default:
		return e.State(), newError(CodeOutOfPhase, "pick weakness during %s", s.Phase)
	}

	opp := &s.Players[SideOpponent]
	if err := e.checkPick(opp.Weaknesses, c); err != nil {
		return e.State(), err
	}
	opp.Weaknesses = append(opp.Weaknesses, c)
	s.Outcome = OutcomeNone

	if len(opp.Weaknesses) == e.cfg.PicksPerSide {
		e.assignComputer()
		e.beginPlay()
	}
	return e.State(), nil
}

func (e *Engine) checkPick(picked []catalog.Category, c catalog.Category) error {
	if !e.cfg.hasCategory(c) {
		return newError(CodeInvalidSelection, "unknown category %q", c)
	}
	if slices.Contains(picked, c) {
		return newError(CodeInvalidSelection, "category %q already picked", c)
	}
	return nil
}

// assignComputer samples the computer's strengths and the weaknesses it
// assigns to the human, independently and without replacement from the
// full enumeration. Either set may overlap the human's picks.
func (e *Engine) assignComputer() {
	s := &e.state
	s.Players[SideOpponent].Strengths = sample(e.rng, e.cfg.Categories, e.cfg.PicksPerSide)
	s.Players[SideSelf].Weaknesses = sample(e.rng, e.cfg.Categories, e.cfg.PicksPerSide)
}

func (e *Engine) beginPlay() {
	s := &e.state
	s.Phase = PhasePlaying
	s.TurnCount = 0
	s.Round = 1
	s.clearTurn()
	for _, side := range []Side{SideSelf, SideOpponent} {
		s.StartPool[side] = len(s.Available(side))
	}
	s.Feedback = fmt.Sprintf("%s, choose a category.", s.Players[SideSelf].Name)

	e.logger.Info("play started",
		"game_id", s.GameID,
		"self_strengths", s.Players[SideSelf].Strengths,
		"self_weaknesses", s.Players[SideSelf].Weaknesses,
		"opponent_strengths", s.Players[SideOpponent].Strengths,
		"opponent_weaknesses", s.Players[SideOpponent].Weaknesses,
	)
	e.skipEmptyTurns()
}
