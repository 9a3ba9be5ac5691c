package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Category names a question category. Categories are immutable labels.
type Category string

// DefaultCategories returns the standard twelve-category enumeration.
func DefaultCategories() []Category {
	return []Category{
		"History", "Science", "Geography", "Math", "Literature", "Sports",
		"Music", "Art", "Technology", "Politics", "Movies", "Travel",
	}
}

// ParseCategories splits a comma-separated list into categories,
// dropping blanks.
func ParseCategories(s string) []Category {
	var out []Category
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, Category(part))
		}
	}
	return out
}

// Kind describes how a question is answered.
type Kind string

const (
	// KindMultipleChoice means the answer is picked from Choices.
	KindMultipleChoice Kind = "multiple_choice"

	// KindFreeText means the answer is typed and fuzzily matched.
	KindFreeText Kind = "free_text"
)

// Question is a single prompt within a topic degree.
type Question struct {
	// Kind selects the judging rule.
	Kind Kind

	// Prompt is the text shown to the player.
	Prompt string

	// Answers lists every accepted answer (alternate spellings included).
	// Never empty for a loaded question.
	Answers []string

	// Choices is populated only for KindMultipleChoice.
	Choices []string
}

// Clone returns a copy of q that shares no slices with it.
func (q Question) Clone() Question {
	q.Answers = slices.Clone(q.Answers)
	q.Choices = slices.Clone(q.Choices)
	return q
}

// Validate checks rules the file schema cannot express: every accepted
// answer of a multiple-choice question must be one of its choices.
func (q Question) Validate() error {
	if q.Kind != KindMultipleChoice {
		return nil
	}
	for _, a := range q.Answers {
		found := false
		for _, c := range q.Choices {
			if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(c)) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("answer %q is not among its choices", a)
		}
	}
	return nil
}

// Topic is a themed unit within a category with questions per degree.
type Topic struct {
	Name     string
	Category Category

	// Degrees maps a degree (1..3) to its question pool.
	// A missing or empty entry means the topic has no content at that degree.
	Degrees map[int][]Question
}

// Clone returns a deep copy of t.
func (t Topic) Clone() Topic {
	if t.Degrees == nil {
		return t
	}
	degrees := make(map[int][]Question, len(t.Degrees))
	for d, qs := range t.Degrees {
		cp := make([]Question, len(qs))
		for i, q := range qs {
			cp[i] = q.Clone()
		}
		degrees[d] = cp
	}
	t.Degrees = degrees
	return t
}

// ValidFor reports whether the topic has at least one question at degree.
func (t Topic) ValidFor(degree int) bool {
	return len(t.Degrees[degree]) > 0
}

// Questions returns the question pool for degree (nil if absent).
func (t Topic) Questions(degree int) []Question {
	return t.Degrees[degree]
}

// Catalog supplies the topics available for a category.
// The engine treats it as read-only.
type Catalog interface {
	Topics(category Category) []Topic
}
