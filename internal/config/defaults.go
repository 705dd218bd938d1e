package config

import (
	_ "embed"
)

//go:embed defaults/typer.yaml
var defaultTyperYAML []byte

// DefaultTyperConfig returns the default typing game configuration.
func DefaultTyperConfig() TyperConfig {
	return TyperConfig{
		Round: RoundConfig{
			Durations:          []int{15, 30, 60, 120},
			DefaultDuration:    60,
			IdleComboTimeout:   5,
			TimerLowThresholds: []float64{5, 2},
		},
		Scoring: ScoringConfig{
			MaxSpeedBonus:       3,
			MinSpeedBonus:       1,
			SpeedDecayPerSecond: 0.5,
			ComboStep:           0.1,
			MaxComboMultiplier:  3,
			ComboLostMin:        2,
			Multipliers: TierMultipliers{
				Easy:   1,
				Medium: 1.5,
				Hard:   2,
				Bonus:  3,
			},
		},
		Progression: ProgressionConfig{
			Enabled:     true,
			MediumAt:    5,
			HardAt:      15,
			BonusChance: 0.1,
		},
		Words: WordsConfig{
			Pack: "constellation",
		},
		Effects: EffectsConfig{
			Shake:       0.5,
			Flash:       0.3,
			ComboBanner: 1.2,
			TimerPulse:  0.6,
			StreakTiers: []int{3, 5, 10},
		},
	}
}
