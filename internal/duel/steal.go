package duel

import "fmt"

// answerWrong handles a miss by side. A miss inside a steal ends the turn
// with no further steal; otherwise the idle side may get an attempt.
func (e *Engine) answerWrong(side Side) {
	s := &e.state
	s.LastAnswered = side
	s.LastPoints = 0
	name := s.Players[side].Name

	if s.StealState != StealNone {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. Turn passes.", name)
		e.endTurn(OutcomeStealFailed)
		return
	}

	if side == SideOpponent {
		e.offerSteal()
		return
	}
	e.computerSteal()
}

// offerSteal hands control to the human after the computer missed. The
// missed question is kept when the category is available to the human;
// otherwise the human must select a fresh category.
func (e *Engine) offerSteal() {
	s := &e.state
	self := s.Players[SideSelf]
	opp := s.Players[SideOpponent]

	if len(s.Available(SideSelf)) == 0 {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. Turn passes.", opp.Name)
		e.endTurn(OutcomeMissed)
		return
	}

	s.StealState = StealAwaitingCategory
	s.Stealer = SideSelf
	s.Outcome = OutcomeStealOffered

	if s.CanSelect(SideSelf, s.Category) {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. %s, steal %s!", opp.Name, self.Name, s.Category)
		return
	}

	s.Category = ""
	s.Topic = nil
	s.Degree = 0
	s.Question = nil
	s.Feedback = fmt.Sprintf("%s answered incorrectly. %s, pick a category to steal.", opp.Name, self.Name)
}

// computerSteal resolves the computer's steal attempt after a human miss.
// On success the computer captures the run and scores it as a steal.
func (e *Engine) computerSteal() {
	s := &e.state
	self := s.Players[SideSelf]
	opp := s.Players[SideOpponent]

	if !s.CanSelect(SideOpponent, s.Category) {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. Turn passes.", self.Name)
		e.endTurn(OutcomeMissed)
		return
	}

	s.StealState = StealAttempting
	s.Stealer = SideOpponent
	s.LastAnswered = SideOpponent

	if !e.computerSucceeds() {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. %s failed to steal. Turn passes.", self.Name, opp.Name)
		e.endTurn(OutcomeStealFailed)
		return
	}
	e.answerCorrect(SideOpponent)
	if s.Outcome == OutcomeStealSucceeded {
		s.Feedback = fmt.Sprintf("%s answered incorrectly. %s", self.Name, s.Feedback)
	}
}
