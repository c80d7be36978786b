package config

import (
	_ "embed"
)

//go:embed defaults/fallingsky.yaml
var defaultFallingSkyYAML []byte

// DefaultFallingSkyConfig returns the built-in configuration. It matches the
// embedded YAML and is used when that cannot be parsed.
func DefaultFallingSkyConfig() FallingSkyConfig {
	return FallingSkyConfig{
		Timing: TimingConfig{
			FallBaseMs:   1100,
			FallStepMs:   50,
			FallMinMs:    65,
			MoveRepeatMs: 100,
			TurnRepeatMs: 200,
			DownRepeatMs: 100,
			MercyTicks:   1,
			SlamDelayMs:  200,
			SwapDelayMs:  400,
		},
		Rotation: RotationConfig{
			WallKickRetries: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialLevel:  0,
			LinesPerLevel: 16,
			MaxLevel:      21,
		},
		Scoring: ScoringConfig{
			LinePoints:      100,
			Exponent:        1.5,
			Rounding:        500,
			WinScore:        100000,
			ClassicWinScore: 50000,
		},
		Bonus: BonusConfig{
			Tiers: map[string]int{
				"big":   342,
				"mid":   137,
				"small": 21,
			},
			Overshoot:   1.2,
			MinLevel:    3,
			MaxLevel:    5,
			RerollLimit: 32,
		},
		Generator: GeneratorConfig{
			Warmup:      5,
			RerollLimit: 64,
		},
	}
}
