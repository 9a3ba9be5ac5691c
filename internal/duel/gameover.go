package duel

// GameOverEvaluator decides whether a game has ended at a turn boundary.
type GameOverEvaluator struct {
	RoundLimit int
}

// Evaluate reports whether s is terminal and why. Mastery takes precedence
// over the round limit when both fire at the same boundary.
func (g GameOverEvaluator) Evaluate(s State) (bool, string) {
	for _, side := range []Side{SideSelf, SideOpponent} {
		pool := s.StartPool[side]
		if pool > 0 && len(s.Players[side].Mastered) >= pool {
			return true, ReasonMastery
		}
	}
	if s.Round > g.RoundLimit {
		return true, ReasonPoints
	}
	return false, ""
}

// Winner returns the side with the higher score, or SideNone on a tie.
func Winner(s State) Side {
	self, opp := s.Players[SideSelf].Score, s.Players[SideOpponent].Score
	switch {
	case self > opp:
		return SideSelf
	case opp > self:
		return SideOpponent
	}
	return SideNone
}
