package duel

import (
	"slices"

	"github.com/abhisek/knowduel/internal/catalog"
)

// Side identifies a participant.
type Side int

const (
	SideSelf     Side = iota // human player
	SideOpponent             // computer player
	SideNone                 // no side (draw, no steal)
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SideSelf:
		return SideOpponent
	case SideOpponent:
		return SideSelf
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case SideSelf:
		return "Player 1"
	case SideOpponent:
		return "AI Player"
	}
	return "none"
}

// Phase is the coarse lifecycle stage of a game.
type Phase int

const (
	PhaseAssigningStrengths Phase = iota
	PhaseAssigningWeaknesses
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAssigningStrengths:
		return "assigning_strengths"
	case PhaseAssigningWeaknesses:
		return "assigning_weaknesses"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// StealState tracks the steal sub-machine.
type StealState int

const (
	StealNone StealState = iota
	// StealAwaitingCategory: the idle side was offered a steal and must
	// answer the retained question or pick a category.
	StealAwaitingCategory
	// StealAttempting: the stealer is answering within the captured run.
	StealAttempting
)

func (s StealState) String() string {
	switch s {
	case StealNone:
		return "none"
	case StealAwaitingCategory:
		return "awaiting_steal_category"
	case StealAttempting:
		return "attempting_steal"
	}
	return "unknown"
}

// Outcome describes what the last transition did, for rendering.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAdvanced
	OutcomeMastered
	OutcomeMissed
	OutcomeNoContent
	OutcomeStealOffered
	OutcomeStealSucceeded
	OutcomeStealFailed
	OutcomeSkipped
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:           "none",
	OutcomeAdvanced:       "advanced",
	OutcomeMastered:       "mastered",
	OutcomeMissed:         "missed",
	OutcomeNoContent:      "no_content",
	OutcomeStealOffered:   "steal_offered",
	OutcomeStealSucceeded: "steal_succeeded",
	OutcomeStealFailed:    "steal_failed",
	OutcomeSkipped:        "skipped",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Player is one side's profile and progress.
type Player struct {
	Side Side
	Name string

	// Strengths are the categories this player chose for itself.
	Strengths []catalog.Category

	// Weaknesses are the categories assigned to this player by the other side.
	Weaknesses []catalog.Category

	// Mastered lists the categories this player has fully cleared, in order.
	Mastered []catalog.Category

	// Score never decreases.
	Score int
}

// HasMastered reports whether c is in the player's mastered set.
func (p Player) HasMastered(c catalog.Category) bool {
	return slices.Contains(p.Mastered, c)
}

// IsWeakness reports whether c is one of the player's weaknesses.
func (p Player) IsWeakness(c catalog.Category) bool {
	return slices.Contains(p.Weaknesses, c)
}

// IsStrength reports whether c is one of the player's strengths.
func (p Player) IsStrength(c catalog.Category) bool {
	return slices.Contains(p.Strengths, c)
}

func (p Player) clone() Player {
	p.Strengths = slices.Clone(p.Strengths)
	p.Weaknesses = slices.Clone(p.Weaknesses)
	p.Mastered = slices.Clone(p.Mastered)
	return p
}

// Result reason strings.
const (
	ReasonMastery = "by Mastery"
	ReasonPoints  = "by Total Points Scored"
)

// State is an immutable snapshot of a game. Every engine operation returns
// a fresh State; mutating a returned State does not affect the engine.
type State struct {
	GameID string
	Phase  Phase

	// Players is indexed by Side.
	Players [2]Player

	// TurnCount increments once per completed turn.
	TurnCount int

	// Round starts at 1 and increments at computer-side turn boundaries.
	Round int

	// Stealer is the side holding a steal, or SideNone.
	Stealer    Side
	StealState StealState

	// Turn fields, cleared at every turn boundary.
	Category catalog.Category
	Topic    *catalog.Topic
	Degree   int
	Question *catalog.Question

	// LastAnswered is the side that answered most recently in this turn.
	LastAnswered Side

	// Outcome and Feedback describe the most recent transition.
	Outcome    Outcome
	LastPoints int
	Feedback   string

	// StartPool is each side's available category count when play began.
	StartPool [2]int

	// Winner and Reason are set once Phase is PhaseGameOver.
	// Winner is SideNone for a draw.
	Winner Side
	Reason string
}

// Player returns the player for side.
func (s State) Player(side Side) Player {
	return s.Players[side]
}

// ActivePlayer is the side that acts next: the stealer during a steal,
// otherwise TurnCount parity.
func (s State) ActivePlayer() Side {
	if s.StealState != StealNone && s.Stealer != SideNone {
		return s.Stealer
	}
	if s.TurnCount%2 == 0 {
		return SideSelf
	}
	return SideOpponent
}

// TurnOwner is the side whose turn it is by parity, ignoring steals.
func (s State) TurnOwner() Side {
	if s.TurnCount%2 == 0 {
		return SideSelf
	}
	return SideOpponent
}

// Claimed reports whether either side has mastered c.
func (s State) Claimed(c catalog.Category) bool {
	return s.Players[SideSelf].HasMastered(c) || s.Players[SideOpponent].HasMastered(c)
}

// Available returns the categories side may currently select: its
// strengths plus the weaknesses assigned to it, without duplicates and
// without any category already mastered by either side.
func (s State) Available(side Side) []catalog.Category {
	if side != SideSelf && side != SideOpponent {
		return nil
	}
	p := s.Players[side]
	var out []catalog.Category
	for _, c := range slices.Concat(p.Strengths, p.Weaknesses) {
		if slices.Contains(out, c) || s.Claimed(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CanSelect reports whether c is in side's available set.
func (s State) CanSelect(side Side, c catalog.Category) bool {
	return slices.Contains(s.Available(side), c)
}

// InTurn reports whether a category run is in progress.
func (s State) InTurn() bool {
	return s.Category != ""
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	for i := range s.Players {
		s.Players[i] = s.Players[i].clone()
	}
	if s.Topic != nil {
		t := s.Topic.Clone()
		s.Topic = &t
	}
	if s.Question != nil {
		q := s.Question.Clone()
		s.Question = &q
	}
	return s
}

// clearTurn resets every per-turn field together.
func (s *State) clearTurn() {
	s.Category = ""
	s.Topic = nil
	s.Degree = 0
	s.Question = nil
	s.StealState = StealNone
	s.Stealer = SideNone
	s.LastAnswered = SideNone
}
