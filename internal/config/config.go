// Package config provides YAML-based tuning for the falling-block game and
// the level progression rules built on it.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// FallingSkyConfig contains all tunable constants of the simulation.
type FallingSkyConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Bonus      BonusConfig      `yaml:"bonus"`
	Generator  GeneratorConfig  `yaml:"generator"`
}

// TimingConfig holds the piece and session timers, in milliseconds unless
// noted.
type TimingConfig struct {
	FallBaseMs   int `yaml:"fall_base_ms"`   // Fall interval at level 0
	FallStepMs   int `yaml:"fall_step_ms"`   // Subtracted per level
	FallMinMs    int `yaml:"fall_min_ms"`    // Floor for the fall interval
	MoveRepeatMs int `yaml:"move_repeat_ms"` // Left/right auto-repeat
	TurnRepeatMs int `yaml:"turn_repeat_ms"` // Rotation auto-repeat
	DownRepeatMs int `yaml:"down_repeat_ms"` // Soft drop auto-repeat
	MercyTicks   int `yaml:"mercy_ticks"`    // Grace steps before locking on ground contact
	SlamDelayMs  int `yaml:"slam_delay_ms"`  // Hard drop cooldown after a new piece
	SwapDelayMs  int `yaml:"swap_delay_ms"`  // Hold cooldown after a new piece
}

// RotationConfig controls wall kicks.
type RotationConfig struct {
	WallKickRetries int `yaml:"wall_kick_retries"`
}

// DifficultyConfig defines level progression.
type DifficultyConfig struct {
	Enabled       bool `yaml:"enabled"`
	InitialLevel  int  `yaml:"initial_level"` // 0 keeps the profile's fall rate
	LinesPerLevel int  `yaml:"lines_per_level"`
	MaxLevel      int  `yaml:"max_level"`
}

// ScoringConfig holds the line clear formula and win thresholds.
type ScoringConfig struct {
	LinePoints      int     `yaml:"line_points"` // Per board column
	Exponent        float64 `yaml:"exponent"`
	Rounding        int     `yaml:"rounding"`
	WinScore        int     `yaml:"win_score"`
	ClassicWinScore int     `yaml:"classic_win_score"` // Win threshold with no bonus blocks
}

// BonusConfig tunes bonus block placement.
type BonusConfig struct {
	Tiers       map[string]int `yaml:"tiers"` // Tier name to weight out of 1000
	Overshoot   float64        `yaml:"overshoot"`
	MinLevel    int            `yaml:"min_level"`
	MaxLevel    int            `yaml:"max_level"`
	RerollLimit int            `yaml:"reroll_limit"`
}

// GeneratorConfig tunes the shape generator's fairness check.
type GeneratorConfig struct {
	Warmup      int `yaml:"warmup"` // Spawns before rejection sampling starts
	RerollLimit int `yaml:"reroll_limit"`
}

// Tier is a bonus tier with its weight.
type Tier struct {
	Name   string
	Weight int
}

// SortedTiers returns the bonus tiers in name order. Band placement depends
// on this order.
func (b BonusConfig) SortedTiers() []Tier {
	names := make([]string, 0, len(b.Tiers))
	for name := range b.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)

	tiers := make([]Tier, len(names))
	for i, name := range names {
		tiers[i] = Tier{Name: name, Weight: b.Tiers[name]}
	}
	return tiers
}

// Validate checks the configuration for values the simulation cannot use.
func (c FallingSkyConfig) Validate() error {
	var errs []error
	t := c.Timing
	if t.FallBaseMs <= 0 || t.FallMinMs <= 0 {
		errs = append(errs, fmt.Errorf("timing: fall intervals must be positive"))
	}
	if t.FallStepMs < 0 || t.MoveRepeatMs < 0 || t.TurnRepeatMs < 0 || t.DownRepeatMs < 0 {
		errs = append(errs, fmt.Errorf("timing: repeat intervals must not be negative"))
	}
	if t.MercyTicks < 0 || t.SlamDelayMs < 0 || t.SwapDelayMs < 0 {
		errs = append(errs, fmt.Errorf("timing: mercy and delays must not be negative"))
	}
	if c.Rotation.WallKickRetries < 0 {
		errs = append(errs, fmt.Errorf("rotation: wall_kick_retries must not be negative"))
	}
	if c.Difficulty.LinesPerLevel < 0 {
		errs = append(errs, fmt.Errorf("difficulty: lines_per_level must not be negative"))
	}
	if c.Difficulty.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("difficulty: max_level must be at least 1"))
	}
	if c.Scoring.LinePoints <= 0 || c.Scoring.Rounding <= 0 || c.Scoring.Exponent <= 0 {
		errs = append(errs, fmt.Errorf("scoring: line_points, rounding and exponent must be positive"))
	}
	if len(c.Bonus.Tiers) == 0 {
		errs = append(errs, fmt.Errorf("bonus: at least one tier is required"))
	}
	for name, w := range c.Bonus.Tiers {
		if w <= 0 || w > 1000 {
			errs = append(errs, fmt.Errorf("bonus: tier %q weight %d out of range (0,1000]", name, w))
		}
	}
	if c.Bonus.MinLevel < 1 || c.Bonus.MaxLevel < c.Bonus.MinLevel || c.Bonus.MaxLevel > 5 {
		errs = append(errs, fmt.Errorf("bonus: levels must satisfy 1 <= min_level <= max_level <= 5"))
	}
	if c.Bonus.RerollLimit < 1 || c.Generator.RerollLimit < 1 {
		errs = append(errs, fmt.Errorf("reroll limits must be at least 1"))
	}
	if c.Generator.Warmup < 0 {
		errs = append(errs, fmt.Errorf("generator: warmup must not be negative"))
	}
	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. An empty string is allowed
// and means "keep the profile's settings".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the starting fall rate for a preset, or 0
// when the preset does not override it.
func InitialLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
