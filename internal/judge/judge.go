// Package judge decides whether a submitted answer matches a question's
// accepted answers.
package judge

import (
	"strconv"
	"strings"

	"github.com/abhisek/knowduel/internal/catalog"
)

// DefaultThreshold is the minimum positional similarity accepted for
// free-text answers.
const DefaultThreshold = 0.85

// Judge checks answers. The zero value uses DefaultThreshold.
type Judge struct {
	Threshold float64
}

// New creates a Judge with the given fuzzy-match threshold.
func New(threshold float64) *Judge {
	return &Judge{Threshold: threshold}
}

func (j *Judge) threshold() float64 {
	if j == nil || j.Threshold <= 0 {
		return DefaultThreshold
	}
	return j.Threshold
}

// Check reports whether answer is correct for q.
//
// Rules:
//   - Whitespace is trimmed; an empty answer is never correct
//   - Multiple choice: case-insensitive exact match against any accepted
//     answer, either by choice text or by 1-based choice index
//   - Free text, numeric accepted answer: exact match ("3.50" does not match "3.5")
//   - Free text, otherwise: positional similarity >= threshold against any
//     accepted answer, after case folding and accent stripping
func (j *Judge) Check(q catalog.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	if q.Kind == catalog.KindMultipleChoice {
		return checkMultipleChoice(q, answer)
	}

	for _, expected := range q.Answers {
		if j.matchFreeText(answer, expected) {
			return true
		}
	}
	return false
}

func (j *Judge) matchFreeText(answer, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return false
	}
	if _, err := strconv.ParseFloat(expected, 64); err == nil {
		return answer == expected
	}
	return Similarity(answer, expected) >= j.threshold()
}

// checkMultipleChoice resolves the answer to a choice first by text, then
// by index, and compares the choice against the accepted answers.
func checkMultipleChoice(q catalog.Question, answer string) bool {
	choice := answer
	if !hasChoice(q.Choices, answer) {
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(q.Choices) {
			choice = q.Choices[idx-1]
		}
	}
	return accepted(q.Answers, choice)
}

func hasChoice(choices []string, answer string) bool {
	for _, c := range choices {
		if strings.EqualFold(strings.TrimSpace(c), answer) {
			return true
		}
	}
	return false
}

func accepted(answers []string, choice string) bool {
	for _, a := range answers {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(choice)) {
			return true
		}
	}
	return false
}
