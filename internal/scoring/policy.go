// Package scoring computes the points awarded for a correct answer.
package scoring

import "github.com/abhisek/knowduel/internal/catalog"

// Config holds the scoring constants.
type Config struct {
	// PointsPerDegree is multiplied by the degree to get base points.
	PointsPerDegree int

	// FreeTextMultiplier scales base points for free-text questions.
	FreeTextMultiplier int

	// WeaknessBonus is added when the category is one of the scorer's
	// own weaknesses.
	WeaknessBonus int

	// StrengthBonus is added when the category is one of the scorer's own
	// strengths and not also a weakness. Zero disables the tier.
	StrengthBonus int

	// StealMultiplier scales the whole total (base + bonus) of a steal.
	StealMultiplier int
}

// DefaultConfig returns the standard scoring constants.
func DefaultConfig() Config {
	return Config{
		PointsPerDegree:    10,
		FreeTextMultiplier: 2,
		WeaknessBonus:      10,
		StrengthBonus:      0,
		StealMultiplier:    2,
	}
}

// Award describes a correct answer to be scored.
type Award struct {
	Degree   int
	Kind     catalog.Kind
	Weakness bool // category is in the scorer's weakness set
	Strength bool // category is in the scorer's strength set
	Steal    bool // answer was given as a steal
}

// Breakdown itemises a score.
type Breakdown struct {
	Base       int
	Bonus      int
	Multiplier int
	Total      int
}

// Policy applies a Config. It is stateless and safe to share.
type Policy struct {
	cfg Config
}

// New creates a Policy.
func New(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// Base returns the base points for a degree and question kind.
func (p *Policy) Base(degree int, kind catalog.Kind) int {
	base := degree * p.cfg.PointsPerDegree
	if kind == catalog.KindFreeText {
		base *= p.cfg.FreeTextMultiplier
	}
	return base
}

// Bonus returns the category bonus for the scorer.
func (p *Policy) Bonus(a Award) int {
	switch {
	case a.Weakness:
		return p.cfg.WeaknessBonus
	case a.Strength:
		return p.cfg.StrengthBonus
	}
	return 0
}

// Score computes the itemised points for a.
func (p *Policy) Score(a Award) Breakdown {
	b := Breakdown{
		Base:       p.Base(a.Degree, a.Kind),
		Bonus:      p.Bonus(a),
		Multiplier: 1,
	}
	if a.Steal {
		b.Multiplier = p.cfg.StealMultiplier
	}
	b.Total = (b.Base + b.Bonus) * b.Multiplier
	return b
}

// Points returns the total points for a.
func (p *Policy) Points(a Award) int {
	return p.Score(a).Total
}
