package duel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/judge"
	"github.com/abhisek/knowduel/internal/scoring"
)

// Config holds every tunable constant of a game.
type Config struct {
	// RoundLimit ends the game once Round exceeds it.
	RoundLimit int `env:"KNOWDUEL_ROUND_LIMIT"`

	// MaxDegree is the degree that masters a category when answered.
	MaxDegree int `env:"KNOWDUEL_MAX_DEGREE"`

	// ComputerAccuracy is the probability the computer answers or steals
	// correctly.
	ComputerAccuracy float64 `env:"KNOWDUEL_COMPUTER_ACCURACY"`

	// WeaknessBonus is added when the scorer answers in one of its own
	// weakness categories.
	WeaknessBonus int `env:"KNOWDUEL_WEAKNESS_BONUS"`

	// StrengthBonus is added when the scorer answers in one of its own
	// strength categories.
	StrengthBonus int `env:"KNOWDUEL_STRENGTH_BONUS"`

	// StealMultiplier scales the full points of a successful steal.
	StealMultiplier int `env:"KNOWDUEL_STEAL_MULTIPLIER"`

	// FuzzyThreshold is the minimum positional similarity for free text.
	FuzzyThreshold float64 `env:"KNOWDUEL_FUZZY_THRESHOLD"`

	// PicksPerSide is the number of strengths and weaknesses per player.
	PicksPerSide int

	// Categories is the enumeration picks are drawn from.
	Categories []catalog.Category `env:"KNOWDUEL_CATEGORIES" envSeparator:","`
}

// DefaultConfig returns the standard game constants.
func DefaultConfig() Config {
	return Config{
		RoundLimit:       5,
		MaxDegree:        3,
		ComputerAccuracy: 0.70,
		WeaknessBonus:    10,
		StrengthBonus:    0,
		StealMultiplier:  2,
		FuzzyThreshold:   judge.DefaultThreshold,
		PicksPerSide:     3,
		Categories:       catalog.DefaultCategories(),
	}
}

// LoadConfig returns DefaultConfig overlaid with any KNOWDUEL_* environment
// variables that are set.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	var cats []catalog.Category
	for _, c := range cfg.Categories {
		if name := strings.TrimSpace(string(c)); name != "" {
			cats = append(cats, catalog.Category(name))
		}
	}
	cfg.Categories = cats

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the config describes a playable game.
func (c Config) Validate() error {
	switch {
	case c.RoundLimit < 1:
		return fmt.Errorf("round limit must be at least 1, got %d", c.RoundLimit)
	case c.MaxDegree < 1:
		return fmt.Errorf("max degree must be at least 1, got %d", c.MaxDegree)
	case c.ComputerAccuracy < 0 || c.ComputerAccuracy > 1:
		return fmt.Errorf("computer accuracy must be in [0,1], got %v", c.ComputerAccuracy)
	case c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1:
		return fmt.Errorf("fuzzy threshold must be in (0,1], got %v", c.FuzzyThreshold)
	case c.WeaknessBonus < 0 || c.StrengthBonus < 0:
		return fmt.Errorf("bonuses must not be negative")
	case c.StealMultiplier < 1:
		return fmt.Errorf("steal multiplier must be at least 1, got %d", c.StealMultiplier)
	case c.PicksPerSide < 1:
		return fmt.Errorf("picks per side must be at least 1, got %d", c.PicksPerSide)
	case len(c.Categories) < c.PicksPerSide:
		return fmt.Errorf("need at least %d categories, got %d", c.PicksPerSide, len(c.Categories))
	}

	seen := make(map[catalog.Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if seen[cat] {
			return fmt.Errorf("duplicate category %q", cat)
		}
		seen[cat] = true
	}
	return nil
}

// Scoring returns the scoring constants derived from c.
func (c Config) Scoring() scoring.Config {
	sc := scoring.DefaultConfig()
	sc.WeaknessBonus = c.WeaknessBonus
	sc.StrengthBonus = c.StrengthBonus
	sc.StealMultiplier = c.StealMultiplier
	return sc
}

func (c Config) hasCategory(cat catalog.Category) bool {
	return slices.Contains(c.Categories, cat)
}
